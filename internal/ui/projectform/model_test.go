package projectform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homereno/renoterm/internal/contractor"
	"github.com/homereno/renoterm/internal/model"
	"github.com/homereno/renoterm/internal/schedule"
)

func TestSubmitDerivesWorkersFromBudget(t *testing.T) {
	m := New(contractor.NewResolver(nil), 80, 24)
	m.Start()
	m.fb.name = "Kitchen remodel"
	m.fb.budget = "30000"

	m, cmd := m.handleSubmit()
	require.NotNil(t, cmd)

	msg, ok := cmd().(CreatedMsg)
	require.True(t, ok)
	assert.Equal(t, schedule.AutoWorkers(30000), msg.Input.Workers)
	assert.Equal(t, 10, msg.Input.Workers)
	assert.Equal(t, 30000.0, msg.Input.Budget)
	assert.Empty(t, m.errText)
}

func TestSubmitRejectsLaborCapViolation(t *testing.T) {
	m := New(contractor.NewResolver(nil), 80, 24)
	m.SetRoster([]model.Contractor{
		{ID: "507f1f77bcf86cd799439011", FullName: "Acme Builders", Price: 5000},
	})
	m.Start()
	m.fb.name = "Shed"
	// Budget 4000 derives 1 worker; 1 + 5000 > 2000 (half the budget).
	m.fb.budget = "4000"
	m.fb.contractorID = "507f1f77bcf86cd799439011"

	m, cmd := m.handleSubmit()
	require.NotNil(t, cmd)
	assert.NotEmpty(t, m.errText)
	assert.Contains(t, m.errText, "Labor cap exceeded")
}

func TestValidateBudget(t *testing.T) {
	assert.NoError(t, validateBudget("24000"))
	assert.NoError(t, validateBudget(" 1 "))
	assert.Error(t, validateBudget(""))
	assert.Error(t, validateBudget("0"))
	assert.Error(t, validateBudget("-5"))
	assert.Error(t, validateBudget("lots"))
}
