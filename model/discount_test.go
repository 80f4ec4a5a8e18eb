package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDiscountDecision_Validate(t *testing.T) {
	t.Parallel()

	valid := DiscountDecision{
		SellerID:   5,
		CustomerID: 12,
		Status:     DiscountApproved,
		Discount:   15,
		DecidedAt:  time.Now(),
	}
	assert.NoError(t, valid.Validate())

	noSeller := valid
	noSeller.SellerID = 0
	assert.Error(t, noSeller.Validate())

	badStatus := valid
	badStatus.Status = "PENDIENTE"
	assert.Error(t, badStatus.Validate())

	tooMuch := valid
	tooMuch.Discount = 120
	assert.Error(t, tooMuch.Validate())

	rejected := valid
	rejected.Status = DiscountRejected
	rejected.Discount = 0
	assert.NoError(t, rejected.Validate())
}

func TestUserSnapshot_ValueScan(t *testing.T) {
	t.Parallel()

	checkIn := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	s := UserSnapshot{
		Name:       "Ana",
		ID:         7,
		Role:       RoleSeller,
		Attendance: &Attendance{CheckIn: checkIn},
	}

	v, err := s.Value()
	if assert.NoError(t, err) {
		assert.Contains(t, v, `"nombre":"Ana"`)
		assert.Contains(t, v, `"prospecto":null`)

		var out UserSnapshot
		if assert.NoError(t, out.Scan([]byte(v.(string)))) {
			assert.Equal(t, s.Name, out.Name)
			assert.Equal(t, s.ID, out.ID)
			assert.Nil(t, out.Prospect)
			if assert.NotNil(t, out.Attendance) {
				assert.True(t, checkIn.Equal(out.Attendance.CheckIn))
				assert.Nil(t, out.Attendance.CheckOut)
			}
		}
	}

	var empty UserSnapshot
	assert.NoError(t, empty.Scan(nil))
	assert.Error(t, empty.Scan(1))
}
