package dto

// ─── Filter ──────────────────────────────────────────────────────────────────

type NotificationFilter struct {
	// Read is tri-state: unset = all, "true"/"false" = filtered.
	Read     *bool  `form:"read"`
	Priority string `form:"priority" validate:"omitempty,oneof=critical warning info"`
	Limit    int    `form:"limit,default=50" validate:"min=1,max=500"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type NotificationResponse struct {
	ID           string  `json:"id"`
	Type         string  `json:"type"`
	Priority     string  `json:"priority"`
	Title        string  `json:"title"`
	Message      string  `json:"message"`
	MedicineID   string  `json:"medicine_id"`
	MedicineName string  `json:"medicine_name"`
	Read         bool    `json:"read"`
	ReadAt       *string `json:"read_at,omitempty"`
	CreatedAt    string  `json:"created_at"`
}

type GenerateResponse struct {
	Message              string `json:"message"`
	NotificationsCreated int    `json:"notifications_created"`
}

type UnreadCountResponse struct {
	UnreadCount int64 `json:"unread_count"`
}

type NotificationSummaryResponse struct {
	ByPriority  map[string]int64 `json:"by_priority"`
	ByType      map[string]int64 `json:"by_type"`
	TotalUnread int64            `json:"total_unread"`
}
