package service

import (
	"context"
	"testing"

	"github.com/Muthu-Raja-M/pharmacy-management-system/internal/apierror"
	"github.com/Muthu-Raja-M/pharmacy-management-system/internal/dto"
	"github.com/Muthu-Raja-M/pharmacy-management-system/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMedicineCreateDefaultsReorderLevel(t *testing.T) {
	svc := NewMedicineService(newStubMedicineRepo())

	resp, err := svc.Create(context.Background(), dto.MedicineRequest{
		Name: "Paracetamol", BatchNo: "B1", Quantity: 100,
		Price: dec("2.50"), ExpiryDate: "2027-12-31", Category: "Analgesic",
	})
	require.NoError(t, err)
	assert.Equal(t, 50, resp.ReorderLevel)
}

func TestMedicineGetUnknown(t *testing.T) {
	svc := NewMedicineService(newStubMedicineRepo())

	_, err := svc.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, apierror.ErrNotFound)
}

func TestMedicineListExpiring(t *testing.T) {
	soon := &model.Medicine{
		Name: "SoonGone", BatchNo: "S1", Quantity: 5,
		Price: dec("1"), ExpiryDate: futureDate(10), Category: "A", ReorderLevel: 5,
	}
	later := &model.Medicine{
		Name: "LaterGone", BatchNo: "L1", Quantity: 5,
		Price: dec("1"), ExpiryDate: futureDate(60), Category: "A", ReorderLevel: 5,
	}
	far := &model.Medicine{
		Name: "FarOut", BatchNo: "F1", Quantity: 5,
		Price: dec("1"), ExpiryDate: futureDate(400), Category: "A", ReorderLevel: 5,
	}
	alreadyGone := &model.Medicine{
		Name: "Past", BatchNo: "P1", Quantity: 5,
		Price: dec("1"), ExpiryDate: futureDate(-2), Category: "A", ReorderLevel: 5,
	}
	legacy := &model.Medicine{
		Name: "Legacy", BatchNo: "X1", Quantity: 5,
		Price: dec("1"), ExpiryDate: "n/a", Category: "A", ReorderLevel: 5,
	}
	svc := NewMedicineService(newStubMedicineRepo(soon, later, far, alreadyGone, legacy))

	resp, err := svc.ListExpiring(context.Background(), 90)
	require.NoError(t, err)

	// Already expired, beyond the window and unparseable rows are excluded;
	// results come back soonest first.
	require.Len(t, resp, 2)
	assert.Equal(t, "SoonGone", resp[0].Name)
	assert.Equal(t, 10, resp[0].DaysUntilExpiry)
	assert.Equal(t, "LaterGone", resp[1].Name)
}

func TestMedicineUpdate(t *testing.T) {
	med := &model.Medicine{
		Name: "Old", BatchNo: "B1", Quantity: 10,
		Price: dec("1"), ExpiryDate: "2027-01-01", Category: "A", ReorderLevel: 5,
	}
	repo := newStubMedicineRepo(med)
	svc := NewMedicineService(repo)

	resp, err := svc.Update(context.Background(), med.ID, dto.MedicineRequest{
		Name: "New", BatchNo: "B2", Quantity: 20,
		Price: dec("2"), ExpiryDate: "2028-01-01", Category: "B", ReorderLevel: 15,
	})
	require.NoError(t, err)
	assert.Equal(t, "New", resp.Name)
	assert.Equal(t, 15, resp.ReorderLevel)

	stored, _ := repo.FindByID(context.Background(), med.ID)
	assert.Equal(t, "B2", stored.BatchNo)
}

func TestMedicineDelete(t *testing.T) {
	med := &model.Medicine{
		Name: "Gone", BatchNo: "B1", Quantity: 10,
		Price: dec("1"), ExpiryDate: "2027-01-01", Category: "A", ReorderLevel: 5,
	}
	repo := newStubMedicineRepo(med)
	svc := NewMedicineService(repo)

	require.NoError(t, svc.Delete(context.Background(), med.ID))
	assert.ErrorIs(t, svc.Delete(context.Background(), med.ID), apierror.ErrNotFound)
}
