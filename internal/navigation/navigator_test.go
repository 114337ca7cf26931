package navigation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/maintenance-desk/internal/domain"
	"github.com/spec-kit/maintenance-desk/internal/query"
	apperrors "github.com/spec-kit/maintenance-desk/pkg/util/errorutil"
)

type unitsStub map[string]string

func (u unitsStub) ResolveUnitProperty(_ context.Context, unit string) (string, bool) {
	p, ok := u[unit]
	return p, ok
}

func newNavigator() *Navigator {
	return New(unitsStub{"204": "Sunset Apartments"})
}

func TestNew_StartsOnQueueAllTab(t *testing.T) {
	st := newNavigator().State()
	assert.Equal(t, domain.ScreenQueue, st.Screen)
	assert.Equal(t, query.ViewAll, st.ActiveTab)
	assert.Empty(t, st.SelectedTicketID)
}

func TestOpenDetailsThenBack_RestoresTab(t *testing.T) {
	nav := newNavigator()
	require.NoError(t, nav.SelectTab(query.ViewUnclaimed))

	require.NoError(t, nav.OpenDetails("T-2024-003", query.ViewUnclaimed))
	st := nav.State()
	assert.Equal(t, domain.ScreenDetails, st.Screen)
	assert.Equal(t, "T-2024-003", st.SelectedTicketID)

	nav.Back()
	st = nav.State()
	assert.Equal(t, domain.ScreenQueue, st.Screen)
	assert.Equal(t, query.ViewUnclaimed, st.ActiveTab)
	assert.Empty(t, st.SelectedTicketID)
}

func TestOpenDetails_DefaultsToCurrentTab(t *testing.T) {
	nav := newNavigator()
	require.NoError(t, nav.SelectTab(query.ViewArchive))
	require.NoError(t, nav.OpenDetails("T-2024-008", ""))
	nav.Back()
	assert.Equal(t, query.ViewArchive, nav.State().ActiveTab)
}

func TestOpenDetails_Validation(t *testing.T) {
	nav := newNavigator()

	err := nav.OpenDetails(" ", query.ViewAll)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeValidation))

	err = nav.OpenDetails("T-2024-001", query.View("closed"))
	assert.True(t, apperrors.HasCode(err, apperrors.CodeValidation))
	assert.Equal(t, domain.ScreenQueue, nav.State().Screen)
}

func TestOpenDetails_RequiresQueue(t *testing.T) {
	ctx := context.Background()

	fromProfile := newNavigator()
	require.NoError(t, fromProfile.Navigate(domain.ScreenProfile))
	err := fromProfile.OpenDetails("T-2024-003", "")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeValidation))
	assert.Equal(t, domain.ScreenProfile, fromProfile.State().Screen)

	fromHistory := newNavigator()
	require.NoError(t, fromHistory.OpenDetails("T-2024-001", query.ViewAll))
	require.NoError(t, fromHistory.ViewUnitHistory(ctx, "204"))
	before := fromHistory.State()
	err = fromHistory.OpenDetails("T-2024-003", query.ViewAll)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeValidation))
	assert.Equal(t, before, fromHistory.State())

	fromDetails := newNavigator()
	require.NoError(t, fromDetails.OpenDetails("T-2024-001", query.ViewAll))
	err = fromDetails.OpenDetails("T-2024-003", query.ViewAll)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeValidation))
	assert.Equal(t, "T-2024-001", fromDetails.State().SelectedTicketID)
}

func TestViewUnitHistory(t *testing.T) {
	nav := newNavigator()
	ctx := context.Background()
	require.NoError(t, nav.OpenDetails("T-2024-001", query.ViewAll))

	require.NoError(t, nav.ViewUnitHistory(ctx, "204"))
	st := nav.State()
	assert.Equal(t, domain.ScreenHistory, st.Screen)
	assert.Equal(t, "204", st.HistoryUnit)
	assert.Equal(t, "Sunset Apartments", st.HistoryProperty)
	assert.Equal(t, "T-2024-001", st.SelectedTicketID)

	nav.Back()
	st = nav.State()
	assert.Equal(t, domain.ScreenDetails, st.Screen)
	assert.Empty(t, st.HistoryUnit)
	assert.Equal(t, "T-2024-001", st.SelectedTicketID)
}

func TestViewUnitHistory_UnknownUnitIsNoop(t *testing.T) {
	nav := newNavigator()
	require.NoError(t, nav.OpenDetails("T-2024-001", query.ViewAll))
	before := nav.State()

	require.NoError(t, nav.ViewUnitHistory(context.Background(), "999"))
	assert.Equal(t, before, nav.State())
}

func TestViewUnitHistory_RequiresDetails(t *testing.T) {
	nav := newNavigator()
	err := nav.ViewUnitHistory(context.Background(), "204")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeValidation))
}

func TestNavigate_DiscardsContextKeepsTab(t *testing.T) {
	nav := newNavigator()
	ctx := context.Background()
	require.NoError(t, nav.OpenDetails("T-2024-001", query.ViewMine))
	require.NoError(t, nav.ViewUnitHistory(ctx, "204"))

	require.NoError(t, nav.Navigate(domain.ScreenProfile))
	st := nav.State()
	assert.Equal(t, domain.ScreenProfile, st.Screen)
	assert.Equal(t, query.ViewMine, st.ActiveTab)
	assert.Empty(t, st.SelectedTicketID)
	assert.Empty(t, st.HistoryUnit)

	nav.Back()
	assert.Equal(t, domain.ScreenQueue, nav.State().Screen)
}

func TestNavigate_RejectsContextScreens(t *testing.T) {
	nav := newNavigator()
	for _, screen := range []domain.Screen{domain.ScreenDetails, domain.ScreenHistory, domain.Screen("settings")} {
		err := nav.Navigate(screen)
		assert.True(t, apperrors.HasCode(err, apperrors.CodeValidation), screen)
	}
	assert.Equal(t, domain.ScreenQueue, nav.State().Screen)
}

func TestParseScreen(t *testing.T) {
	s, ok := ParseScreen(" Profile ")
	assert.True(t, ok)
	assert.Equal(t, domain.ScreenProfile, s)

	_, ok = ParseScreen("chat")
	assert.False(t, ok)
}
