//go:build unit
// +build unit

package v1

import (
	"net/http"
	"testing"
	"time"

	"github.com/Mathmagicians/theslope/internal/domain/calendar"
	"github.com/Mathmagicians/theslope/internal/domain/dinner"
	"github.com/Mathmagicians/theslope/internal/domain/errs"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func testEvent(state string) *dinner.DinnerEvent {
	return &dinner.DinnerEvent{
		ID:        testEventID,
		SeasonID:  testSeasonID,
		Date:      calendar.Date(2025, time.March, 3),
		MenuTitle: "Stegt flæsk",
		State:     state,
	}
}

func TestDinnerEventHandler_List_ParsesFilters(t *testing.T) {
	m := newMockServices()
	handler := NewDinnerEventHandler(m.dinnerEvents, m.seasons)

	m.dinnerEvents.
		On("List", mock.Anything, mock.MatchedBy(func(q *dinner.DinnerEventQuery) bool {
			return q.SeasonID == testSeasonID &&
				q.From.Equal(calendar.Date(2025, time.March, 1)) &&
				q.To.Equal(calendar.Date(2025, time.March, 31)) &&
				len(q.States) == 1 && q.States[0] == dinner.StateAnnounced
		})).
		Return([]*dinner.DinnerEvent{testEvent(dinner.StateAnnounced)}, nil)

	c, w := newTestContext("GET", "/dinner-events?season_id="+testSeasonID+"&from=2025-03-01&to=2025-03-31&state=ANNOUNCED", "", "")
	handler.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Stegt flæsk")
	m.dinnerEvents.AssertExpectations(t)
}

func TestDinnerEventHandler_List_BadDate(t *testing.T) {
	m := newMockServices()
	handler := NewDinnerEventHandler(m.dinnerEvents, m.seasons)

	c, w := newTestContext("GET", "/dinner-events?from=March", "", "")
	handler.List(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDinnerEventHandler_UpdateMenu(t *testing.T) {
	m := newMockServices()
	handler := NewDinnerEventHandler(m.dinnerEvents, m.seasons)

	m.dinnerEvents.
		On("UpdateMenu", mock.Anything, testEventID, mock.MatchedBy(func(u *dinner.MenuUpdate) bool {
			return u.MenuTitle == "Stegt flæsk" && u.TotalCost == 150000
		})).
		Return(testEvent(dinner.StateScheduled), nil)

	body := `{"menu_title": "Stegt flæsk", "menu_description": "med persillesovs", "total_cost": 150000}`
	c, w := newTestContext("PUT", "/dinner-events/"+testEventID+"/menu", body, testUserID, gin.Param{Key: "id", Value: testEventID})
	handler.UpdateMenu(c)

	assert.Equal(t, http.StatusOK, w.Code)
	m.dinnerEvents.AssertExpectations(t)
}

func TestDinnerEventHandler_Announce_WithoutMenu(t *testing.T) {
	m := newMockServices()
	handler := NewDinnerEventHandler(m.dinnerEvents, m.seasons)

	m.dinnerEvents.On("Announce", mock.Anything, testEventID).
		Return(nil, errs.Conflict("announce", testEventID, "menu title missing"))

	c, w := newTestContext("POST", "/dinner-events/"+testEventID+"/announce", "", testUserID, gin.Param{Key: "id", Value: testEventID})
	handler.Announce(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestDinnerEventHandler_Cancel_RequiresUser(t *testing.T) {
	m := newMockServices()
	handler := NewDinnerEventHandler(m.dinnerEvents, m.seasons)

	c, w := newTestContext("POST", "/dinner-events/"+testEventID+"/cancel", "", "", gin.Param{Key: "id", Value: testEventID})
	handler.Cancel(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	m.dinnerEvents.AssertNotCalled(t, "Cancel", mock.Anything, mock.Anything, mock.Anything)
}

func TestDinnerEventHandler_ChefReport(t *testing.T) {
	m := newMockServices()
	handler := NewDinnerEventHandler(m.dinnerEvents, m.seasons)

	report := &dinner.ChefReport{
		DinnerEventID: testEventID,
		Date:          calendar.Date(2025, time.March, 3),
		TotalTickets:  12,
		Guests:        2,
		ByMode:        map[dinner.Mode]int{dinner.ModeDineIn: 10, dinner.ModeTakeaway: 2},
		ByTicketType:  map[string]int{"ADULT": 9, "CHILD": 3},
		Allergies:     []dinner.AttendeeAllergy{{InhabitantID: testInhabitantID, InhabitantName: "Karen Blixen", AllergyName: "Nødder"}},
	}
	m.dinnerEvents.On("ChefReport", mock.Anything, testEventID).Return(report, nil)

	c, w := newTestContext("GET", "/dinner-events/"+testEventID+"/report", "", "", gin.Param{Key: "id", Value: testEventID})
	handler.ChefReport(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"DINEIN":10`)
	assert.Contains(t, w.Body.String(), "Nødder")
}

func TestDinnerEventHandler_Calendar_DefaultsToActiveSeason(t *testing.T) {
	m := newMockServices()
	handler := NewDinnerEventHandler(m.dinnerEvents, m.seasons)

	m.seasons.On("GetActive", mock.Anything).Return(testSeason(), nil)
	m.dinnerEvents.On("ExportCalendar", mock.Anything, testSeasonID, mock.Anything).Return(nil)

	c, w := newTestContext("GET", "/dinner-events/calendar.ics", "", "")
	handler.Calendar(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/calendar")
	assert.Contains(t, w.Body.String(), "BEGIN:VCALENDAR")
	m.seasons.AssertExpectations(t)
}

func TestDinnerEventHandler_Calendar_NoActiveSeason(t *testing.T) {
	m := newMockServices()
	handler := NewDinnerEventHandler(m.dinnerEvents, m.seasons)

	m.seasons.On("GetActive", mock.Anything).Return(nil, errs.NotFound("get active season", ""))

	c, w := newTestContext("GET", "/dinner-events/calendar.ics", "", "")
	handler.Calendar(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	m.dinnerEvents.AssertNotCalled(t, "ExportCalendar", mock.Anything, mock.Anything, mock.Anything)
}
