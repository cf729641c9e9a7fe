package wizard_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darideveloper/cotiza/pkg/catalog"
	"github.com/darideveloper/cotiza/pkg/domain"
	"github.com/darideveloper/cotiza/pkg/wizard"
)

func newEngine(t *testing.T) *wizard.Engine {
	t.Helper()
	return wizard.New(catalog.Default())
}

func TestNewSession_Defaults(t *testing.T) {
	e := newEngine(t)
	s := e.NewSession("daridev")

	assert.Equal(t, 1, s.CurrentStep)
	assert.Empty(t, s.SelectedFeatures)
	assert.Empty(t, s.SelectedSections)
	assert.Equal(t, domain.CurrencyUSD, s.Currency)
	assert.Equal(t, 1, s.SectionCount)
	assert.False(t, s.PrivacyAccepted)
	assert.Equal(t, domain.StatusActive, s.Status)
	assert.Zero(t, s.TotalPrice)
}

func TestStepNavigation_Bounds(t *testing.T) {
	e := newEngine(t)
	s := e.NewSession("daridev")

	require.ErrorIs(t, e.PrevStep(s), domain.ErrInvalidStep)
	assert.Equal(t, 1, s.CurrentStep)

	for i := 2; i <= domain.TotalSteps; i++ {
		require.NoError(t, e.NextStep(s))
		assert.Equal(t, i, s.CurrentStep)
	}
	require.ErrorIs(t, e.NextStep(s), domain.ErrInvalidStep)
	assert.Equal(t, domain.TotalSteps, s.CurrentStep)

	require.ErrorIs(t, e.GoToStep(s, 0), domain.ErrInvalidStep)
	require.ErrorIs(t, e.GoToStep(s, domain.TotalSteps+1), domain.ErrInvalidStep)
	require.NoError(t, e.GoToStep(s, 3))
	assert.Equal(t, 3, s.CurrentStep)
}

func TestToggleFeature_RoundTripAndRecompute(t *testing.T) {
	e := newEngine(t)
	s := e.NewSession("daridev")

	require.NoError(t, e.ToggleFeature(s, "domain"))
	assert.True(t, s.HasFeature("domain"))
	assert.Equal(t, 25.0, s.TotalPrice)

	require.NoError(t, e.ToggleFeature(s, "hosting"))
	assert.Equal(t, 35.0, s.TotalPrice)

	// Toggling the same id again restores the original set.
	require.NoError(t, e.ToggleFeature(s, "domain"))
	assert.False(t, s.HasFeature("domain"))
	assert.Equal(t, []string{"hosting"}, s.SelectedFeatures)
	assert.Equal(t, 10.0, s.TotalPrice)
}

func TestToggleFeature_UnknownRejected(t *testing.T) {
	e := newEngine(t)
	s := e.NewSession("daridev")

	require.ErrorIs(t, e.ToggleFeature(s, "flying-cars"), domain.ErrUnknownFeature)
	assert.Empty(t, s.SelectedFeatures)
	assert.Zero(t, s.TotalPrice)
}

func TestToggleSection_RequiredRejected(t *testing.T) {
	e := newEngine(t)
	s := e.NewSession("daridev")

	require.ErrorIs(t, e.ToggleSection(s, "header"), domain.ErrRequiredSection)
	require.ErrorIs(t, e.ToggleSection(s, "nope"), domain.ErrUnknownSection)
	assert.Empty(t, s.SelectedSections)

	require.NoError(t, e.ToggleSection(s, "hero"))
	assert.Equal(t, 20.0, s.TotalPrice)
	require.NoError(t, e.ToggleSection(s, "hero"))
	assert.Empty(t, s.SelectedSections)
	assert.Zero(t, s.TotalPrice)
}

func TestSetExtraSections(t *testing.T) {
	e := newEngine(t)
	s := e.NewSession("daridev")

	require.NoError(t, e.SetExtraSections(s, 2))
	assert.Equal(t, 40.0, s.TotalPrice)

	require.ErrorIs(t, e.SetExtraSections(s, -1), domain.ErrNegativeCount)
	assert.Equal(t, 2, s.ExtraSections)
}

func TestSetCurrency_Recomputes(t *testing.T) {
	e := newEngine(t)
	s := e.NewSession("daridev")

	require.NoError(t, e.ToggleFeature(s, "domain"))
	require.NoError(t, e.ToggleFeature(s, "hosting"))
	require.NoError(t, e.ToggleSection(s, "hero"))
	require.Equal(t, 55.0, s.TotalPrice)

	require.NoError(t, e.SetCurrency(s, domain.CurrencyMXN))
	assert.Equal(t, 880.0, s.TotalPrice)

	require.NoError(t, e.SetCurrency(s, domain.CurrencyUSD))
	assert.Equal(t, 55.0, s.TotalPrice)

	require.ErrorIs(t, e.SetCurrency(s, "EUR"), domain.ErrInvalidCurrency)
}

func TestSetSectionCount_AffectsPerSectionFeatures(t *testing.T) {
	e := newEngine(t)
	s := e.NewSession("daridev")

	require.NoError(t, e.ToggleFeature(s, "multilang"))
	assert.Equal(t, 5.0, s.TotalPrice)

	require.NoError(t, e.SetSectionCount(s, 4))
	assert.Equal(t, 20.0, s.TotalPrice)

	require.ErrorIs(t, e.SetSectionCount(s, -2), domain.ErrNegativeCount)
}

func TestSetClientField(t *testing.T) {
	e := newEngine(t)
	s := e.NewSession("daridev")

	require.NoError(t, e.SetClientField(s, "name", "Ana"))
	require.NoError(t, e.SetClientField(s, "email", "ana@example.com"))
	require.NoError(t, e.SetClientField(s, "company", "ACME"))
	require.NoError(t, e.SetClientField(s, "phone", "+52 33 0000 0000"))
	assert.Equal(t, domain.ClientInfo{
		Name: "Ana", Email: "ana@example.com", Company: "ACME", Phone: "+52 33 0000 0000",
	}, s.ClientInfo)

	require.ErrorIs(t, e.SetClientField(s, "nickname", "x"), domain.ErrUnknownField)

	// Contact edits never touch the derived total.
	assert.Zero(t, s.TotalPrice)
}

func TestReset_RestoresDefaults(t *testing.T) {
	e := newEngine(t)
	s := e.NewSession("3s")

	require.NoError(t, e.ToggleFeature(s, "ecommerce"))
	require.NoError(t, e.ToggleSection(s, "hero"))
	require.NoError(t, e.GoToStep(s, 5))
	require.NoError(t, e.SetPrivacyAccepted(s, true))
	s.Status = domain.StatusConfirmed

	e.Reset(s)

	assert.Equal(t, 1, s.CurrentStep)
	assert.Empty(t, s.SelectedFeatures)
	assert.Empty(t, s.SelectedSections)
	assert.False(t, s.PrivacyAccepted)
	assert.Equal(t, domain.StatusActive, s.Status)
	assert.Zero(t, s.TotalPrice)
	assert.Equal(t, "3s", s.Brand, "reset keeps the session brand")
}

func TestMutations_BlockedAfterConfirmation(t *testing.T) {
	e := newEngine(t)
	s := e.NewSession("daridev")
	s.Status = domain.StatusConfirmed

	require.ErrorIs(t, e.ToggleFeature(s, "domain"), domain.ErrAlreadyConfirmed)
	require.ErrorIs(t, e.NextStep(s), domain.ErrAlreadyConfirmed)
	require.ErrorIs(t, e.SetPrivacyAccepted(s, false), domain.ErrAlreadyConfirmed)

	s.Status = domain.StatusSubmitting
	require.ErrorIs(t, e.SetCurrency(s, domain.CurrencyMXN), domain.ErrSubmissionInFlight)
}
