package session

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homereno/renoterm/internal/model"
)

func testRoster() []model.Contractor {
	return []model.Contractor{
		{ID: "507f1f77bcf86cd799439011", FullName: "Acme Builders", Price: 1200, Expertise: model.ExpertiseSenior},
		{ID: "507f1f77bcf86cd799439012", FullName: "Smith & Sons", Price: 9000, Expertise: model.ExpertiseJunior},
	}
}

func testProject() model.Project {
	return model.Project{
		ID:       "p1",
		Name:     "Kitchen remodel",
		Address:  "12 Elm St",
		Budget:   10000,
		Workers:  3,
		Progress: 20,
		EtaWeeks: 6,
	}
}

func loadedSession(t *testing.T) *ProjectSession {
	t.Helper()
	s := New(nil)
	s.Load(testProject())
	s.SetRoster(testRoster())
	return s
}

func TestLoadNormalizesSnapshot(t *testing.T) {
	s := New(nil)
	lat := 40.7
	s.Load(model.Project{ID: "p1", Budget: -50, Workers: -2, Progress: 240, Latitude: &lat})

	p := s.Project()
	assert.Equal(t, 0.0, p.Budget)
	assert.Equal(t, 0, p.Workers)
	assert.Equal(t, 100, p.Progress)
	assert.True(t, p.Finished, "progress past 100 derives the finished flag")
	assert.Nil(t, p.Latitude, "a lone latitude is dropped")
}

func TestBaselineEtaCapture(t *testing.T) {
	t.Run("captured at load", func(t *testing.T) {
		s := loadedSession(t)
		assert.Equal(t, 6.0, s.BaseEtaWeeks())
	})

	t.Run("unrelated saves never move the baseline", func(t *testing.T) {
		s := loadedSession(t)

		_, err := s.EditName("Kitchen remodel v2")
		require.NoError(t, err)

		// The server echo happens to carry a different eta value.
		echo := testProject()
		echo.Name = "Kitchen remodel v2"
		echo.EtaWeeks = 11
		s.ApplySave(FieldName, echo)

		assert.Equal(t, 6.0, s.BaseEtaWeeks())
		assert.Equal(t, 11.0, s.Project().EtaWeeks, "the aggregate still takes the snapshot verbatim")
	})

	t.Run("explicit eta save re-captures", func(t *testing.T) {
		s := loadedSession(t)

		weeks, err := s.EditEta(8)
		require.NoError(t, err)
		assert.Equal(t, 8.0, weeks)

		echo := testProject()
		echo.EtaWeeks = 8
		s.ApplySave(FieldEta, echo)
		assert.Equal(t, 8.0, s.BaseEtaWeeks())
	})

	t.Run("reload re-captures", func(t *testing.T) {
		s := loadedSession(t)
		fresh := testProject()
		fresh.EtaWeeks = 3
		s.Load(fresh)
		assert.Equal(t, 3.0, s.BaseEtaWeeks())
	})
}

func TestFinishedLock(t *testing.T) {
	s := New(nil)
	p := testProject()
	p.Finished = true
	s.Load(p)
	s.SetRoster(testRoster())

	t.Run("every field but the name rejects locally", func(t *testing.T) {
		_, err := s.EditAddress("1 New Rd")
		assert.ErrorIs(t, err, ErrFieldLocked)
		_, err = s.EditBudget(20000)
		assert.ErrorIs(t, err, ErrFieldLocked)
		_, err = s.EditWorkers(5)
		assert.ErrorIs(t, err, ErrFieldLocked)
		_, err = s.EditProgress(50)
		assert.ErrorIs(t, err, ErrFieldLocked)
		_, err = s.EditEta(2)
		assert.ErrorIs(t, err, ErrFieldLocked)
		assert.ErrorIs(t, s.AssignContractor("507f1f77bcf86cd799439011"), ErrFieldLocked)
		assert.ErrorIs(t, s.RemoveContractor(), ErrFieldLocked)
		assert.ErrorIs(t, s.Finish(), ErrFieldLocked)

		// Nothing was marked in-flight, so no save would go out.
		for _, f := range []Field{FieldAddress, FieldBudget, FieldWorkers, FieldProgress, FieldEta, FieldContractor, FieldFinished} {
			assert.Equal(t, SaveIdle, s.FieldStatus(f).State, "field %s", f)
		}

		// The stored values are untouched.
		assert.Equal(t, 10000.0, s.Project().Budget)
		assert.Equal(t, "12 Elm St", s.Project().Address)
	})

	t.Run("renaming still works", func(t *testing.T) {
		name, err := s.EditName("  Kitchen, done  ")
		require.NoError(t, err)
		assert.Equal(t, "Kitchen, done", name)
		assert.Equal(t, SaveInFlight, s.FieldStatus(FieldName).State)
	})

	t.Run("finished projects pin progress to 100", func(t *testing.T) {
		assert.Equal(t, 100, s.DisplayProgress())
	})

	t.Run("finished projects have no eta estimate", func(t *testing.T) {
		_, ok := s.EtaDays()
		assert.False(t, ok)
	})
}

func TestLaborCapGating(t *testing.T) {
	t.Run("budget edit below the committed labor is blocked", func(t *testing.T) {
		s := loadedSession(t)
		require.NoError(t, s.AssignContractor("507f1f77bcf86cd799439011"))
		echo := testProject()
		echo.Contractor = model.ContractorRef{ID: "507f1f77bcf86cd799439011"}
		s.ApplySave(FieldContractor, echo)

		// workers 3 + price 1200 = 1203 > 1000.
		_, err := s.EditBudget(2000)
		require.Error(t, err)
		assert.True(t, IsLaborCapError(err))
		assert.Equal(t, SaveIdle, s.FieldStatus(FieldBudget).State)
		assert.Equal(t, 10000.0, s.Project().Budget, "control reverts to last known-good")
	})

	t.Run("workers edit over the cap is blocked", func(t *testing.T) {
		s := loadedSession(t)
		_, err := s.EditWorkers(5001)
		require.Error(t, err)
		assert.True(t, IsLaborCapError(err))

		w, err := s.EditWorkers(5000)
		require.NoError(t, err)
		assert.Equal(t, 5000, w)
	})

	t.Run("negative workers coerce to zero", func(t *testing.T) {
		s := loadedSession(t)
		w, err := s.EditWorkers(-4)
		require.NoError(t, err)
		assert.Equal(t, 0, w)
	})

	t.Run("pricey contractor is rejected against the current budget", func(t *testing.T) {
		s := loadedSession(t)
		err := s.AssignContractor("507f1f77bcf86cd799439012") // price 9000, cap 5000
		require.Error(t, err)
		assert.True(t, IsLaborCapError(err))
		assert.Equal(t, SaveIdle, s.FieldStatus(FieldContractor).State)

		require.NoError(t, s.AssignContractor("507f1f77bcf86cd799439011"))
	})
}

func TestFieldSavesAreIndependent(t *testing.T) {
	s := loadedSession(t)

	_, err := s.EditName("New name")
	require.NoError(t, err)
	_, err = s.EditBudget(12000)
	require.NoError(t, err)

	assert.Equal(t, SaveInFlight, s.FieldStatus(FieldName).State)
	assert.Equal(t, SaveInFlight, s.FieldStatus(FieldBudget).State)

	// The budget save fails; the name save is untouched and the
	// aggregate keeps its last-confirmed budget.
	s.ApplySaveError(FieldBudget, errors.New("503 from server"))
	assert.Equal(t, SaveInFlight, s.FieldStatus(FieldName).State)
	assert.Equal(t, SaveFailed, s.FieldStatus(FieldBudget).State)
	assert.Contains(t, s.FieldStatus(FieldBudget).Err, "503")
	assert.Equal(t, 10000.0, s.Project().Budget)

	// The name save lands; only its own flag clears.
	echo := testProject()
	echo.Name = "New name"
	s.ApplySave(FieldName, echo)
	assert.Equal(t, SaveIdle, s.FieldStatus(FieldName).State)
	assert.Equal(t, SaveFailed, s.FieldStatus(FieldBudget).State)
	assert.Equal(t, "New name", s.Project().Name)
}

func TestEditValidation(t *testing.T) {
	t.Run("edits before load are rejected", func(t *testing.T) {
		s := New(nil)
		_, err := s.EditName("x")
		assert.ErrorIs(t, err, ErrNotLoaded)
		_, err = s.EditBudget(1)
		assert.ErrorIs(t, err, ErrNotLoaded)
	})

	t.Run("blank names are rejected", func(t *testing.T) {
		s := loadedSession(t)
		_, err := s.EditName("   ")
		assert.ErrorIs(t, err, ErrNameRequired)
	})

	t.Run("progress clamps to the open range", func(t *testing.T) {
		s := loadedSession(t)
		p, err := s.EditProgress(150)
		require.NoError(t, err)
		assert.Equal(t, 99, p)
		p, err = s.EditProgress(-10)
		require.NoError(t, err)
		assert.Equal(t, 0, p)
	})

	t.Run("eta edits round to whole weeks and floor at zero", func(t *testing.T) {
		s := loadedSession(t)
		w, err := s.EditEta(4.6)
		require.NoError(t, err)
		assert.Equal(t, 5.0, w)
		w, err = s.EditEta(-3)
		require.NoError(t, err)
		assert.Equal(t, 0.0, w)
	})
}

func TestEtaDays(t *testing.T) {
	s := loadedSession(t)

	// Base 6 weeks = 42 days, 3 workers shave 0.8, progress 20%:
	// 41.2 * 0.8 = 32.96, ceil 33.
	days, ok := s.EtaDays()
	require.True(t, ok)
	assert.Equal(t, 33, days)

	// Assigning a senior contractor moves the estimate through the
	// roster lookup: (42 - 7 - 0.8) * 0.8 = 27.36, ceil 28.
	echo := testProject()
	echo.Contractor = model.ContractorRef{ID: "507f1f77bcf86cd799439011"}
	s.ApplySave(FieldContractor, echo)
	days, ok = s.EtaDays()
	require.True(t, ok)
	assert.Equal(t, 28, days)

	// The estimate follows the captured baseline, not server echoes.
	echo.EtaWeeks = 60
	s.ApplySave(FieldName, echo)
	days, ok = s.EtaDays()
	require.True(t, ok)
	assert.Equal(t, 28, days)
}

func TestTaskCompletionGating(t *testing.T) {
	s := loadedSession(t)

	t.Run("no tasks means zero percent", func(t *testing.T) {
		assert.Equal(t, 0, s.CompletionPercent())
		assert.False(t, s.CanFinish())
	})

	t.Run("percentage rounds over the finished share", func(t *testing.T) {
		s.SetTasks([]model.Task{
			{ID: "t1", Status: model.TaskFinished},
			{ID: "t2", Status: model.TaskFinished},
			{ID: "t3", Status: model.TaskWorking},
		})
		assert.Equal(t, 67, s.CompletionPercent())
		assert.False(t, s.CanFinish())
		assert.ErrorIs(t, s.Finish(), ErrTasksIncomplete)
	})

	t.Run("all tasks done offers the finish transition", func(t *testing.T) {
		s.SetTasks([]model.Task{
			{ID: "t1", Status: model.TaskFinished},
			{ID: "t2", Status: model.TaskFinished},
		})
		assert.Equal(t, 100, s.CompletionPercent())
		assert.True(t, s.CanFinish())
		require.NoError(t, s.Finish())
		assert.Equal(t, SaveInFlight, s.FieldStatus(FieldFinished).State)

		echo := testProject()
		echo.Finished = true
		s.ApplySave(FieldFinished, echo)
		require.True(t, s.Project().IsFinished())
		assert.Equal(t, 100, s.Project().Progress, "finishing jumps progress to exactly 100")
		assert.False(t, s.CanFinish())
	})
}

func TestGeocodeStaleSuppression(t *testing.T) {
	s := loadedSession(t)

	first := s.BeginGeocode()
	second := s.BeginGeocode()

	assert.False(t, s.AcceptGeocode(first), "superseded lookup is discarded")
	assert.True(t, s.AcceptGeocode(second))
	assert.False(t, s.AcceptGeocode(""), "empty token never matches")

	// A reload invalidates outstanding lookups entirely.
	s.Load(testProject())
	assert.False(t, s.AcceptGeocode(second))
}
