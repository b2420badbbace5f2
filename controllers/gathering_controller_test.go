package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"mingle_server/models"
	"mingle_server/services"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type quietNotifier struct{}

func (quietNotifier) Notify(string, models.NotificationPayload) {}

type fixedDirectory struct {
	attendees []models.AttendeeProfile
}

func (d *fixedDirectory) GetActiveAttendees(ctx context.Context) ([]models.AttendeeProfile, error) {
	return d.attendees, nil
}

func (d *fixedDirectory) GetAttendeeProfile(ctx context.Context, userID string) (*models.AttendeeProfile, error) {
	for i := range d.attendees {
		if d.attendees[i].UserID == userID {
			p := d.attendees[i]
			return &p, nil
		}
	}
	return nil, models.ErrNotFound
}

type fixedAvailability struct{}

func (fixedAvailability) AvailabilitySignal(*models.AttendeeProfile, time.Time, time.Duration) float64 {
	return 1.0
}

func newTestRouter(t *testing.T) (*mux.Router, *services.MemoryStore, *services.Scheduler) {
	t.Helper()

	store := services.NewMemoryStore()
	scheduler := services.NewScheduler()
	directory := &fixedDirectory{attendees: []models.AttendeeProfile{
		{UserID: "creator-1", Title: "Founder", CheckedIn: true},
		{UserID: "u1", Title: "Engineer", CheckedIn: true},
		{UserID: "u2", Title: "Designer", CheckedIn: true},
	}}

	cfg := services.DefaultLifecycleConfig()
	cfg.TickInterval = time.Hour

	lifecycle := services.NewLifecycleService(
		store, store, directory,
		&services.TargetingService{},
		&services.ScoringService{Availability: fixedAvailability{}},
		services.NewInvitationService(store, quietNotifier{}),
		quietNotifier{}, scheduler, cfg,
	)

	r := mux.NewRouter()
	gc := &GatheringController{Lifecycle: lifecycle}
	ic := &InvitationController{Lifecycle: lifecycle, Invitations: store}
	r.HandleFunc("/api/gatherings", gc.CreateGathering).Methods("POST")
	r.HandleFunc("/api/gatherings/{gatheringId}", gc.GetGathering).Methods("GET")
	r.HandleFunc("/api/invitations/{invitationId}/responses", ic.RespondToInvitation).Methods("POST")
	r.HandleFunc("/api/invitations/pending/{userId}", ic.GetPendingInvitations).Methods("GET")

	t.Cleanup(func() {
		gatherings, _ := store.LoadGatherings(context.Background())
		for _, g := range gatherings {
			scheduler.Cancel(g.GatheringID)
		}
	})
	return r, store, scheduler
}

func TestCreateGatheringEndpoint(t *testing.T) {
	router, _, scheduler := newTestRouter(t)

	body, err := json.Marshal(models.GatheringRequest{
		CreatorID: "creator-1",
		Title:     "Coffee chat",
		Type:      models.GatheringTypeCoffee,
		Capacity:  models.Capacity{Min: 2, Max: 6},
		Timing:    models.Timing{PreferredTime: time.Now().Add(2 * time.Hour), DurationMinutes: 30},
	})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/gatherings", bytes.NewReader(body)))

	require.Equal(t, http.StatusCreated, rec.Code)

	var g models.Gathering
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &g))
	assert.NotEmpty(t, g.GatheringID)
	assert.Equal(t, models.GatheringStatusInviting, g.Status)
	assert.True(t, scheduler.Active(g.GatheringID))

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/gatherings/"+g.GatheringID, nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCreateGatheringEndpointBadCapacity(t *testing.T) {
	router, _, _ := newTestRouter(t)

	body := []byte(`{"creatorId":"creator-1","title":"Broken","type":"coffee","capacity":{"min":5,"max":2}}`)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/gatherings", bytes.NewReader(body)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetGatheringEndpointNotFound(t *testing.T) {
	router, _, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/gatherings/missing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRespondToInvitationEndpoint(t *testing.T) {
	router, store, _ := newTestRouter(t)
	ctx := context.Background()

	g := &models.Gathering{
		GatheringID: "g-1",
		CreatorID:   "creator-1",
		Title:       "Demo corner",
		Type:        models.GatheringTypeDemo,
		Capacity:    models.Capacity{Min: 1, Max: 4},
		Timing:      models.Timing{PreferredTime: time.Now().Add(2 * time.Hour)},
		Status:      models.GatheringStatusInviting,
		Pending:     []string{"u1"},
		Targeting:   models.TargetingSpec{AutoAcceptThreshold: 80, MaxInvites: 10},
		Metadata:    models.GatheringMetadata{InvitesSent: 1},
	}
	require.NoError(t, store.SaveGathering(ctx, g))
	require.NoError(t, store.SaveInvitation(ctx, &models.Invitation{
		InvitationID: "i1",
		GatheringID:  "g-1",
		TargetUserID: "u1",
		Status:       models.InvitationStatusPending,
		SentAt:       time.Now(),
		ExpiresAt:    time.Now().Add(30 * time.Minute),
	}))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/invitations/i1/responses",
		bytes.NewReader([]byte(`{"response":"accepted"}`))))
	require.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		Invitation models.Invitation `json:"invitation"`
		Gathering  models.Gathering  `json:"gathering"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, models.InvitationStatusAccepted, payload.Invitation.Status)
	assert.Equal(t, []string{"u1"}, payload.Gathering.Accepted)

	// Double response conflicts
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/invitations/i1/responses",
		bytes.NewReader([]byte(`{"response":"declined"}`))))
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/invitations/missing/responses",
		bytes.NewReader([]byte(`{"response":"accepted"}`))))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/invitations/i1/responses",
		bytes.NewReader([]byte(`{"response":"maybe"}`))))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetPendingInvitationsEndpoint(t *testing.T) {
	router, store, _ := newTestRouter(t)
	ctx := context.Background()

	require.NoError(t, store.SaveInvitation(ctx, &models.Invitation{
		InvitationID: "i1",
		GatheringID:  "g-1",
		TargetUserID: "u1",
		Status:       models.InvitationStatusPending,
		ExpiresAt:    time.Now().Add(30 * time.Minute),
	}))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/invitations/pending/u1", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var invites []models.Invitation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &invites))
	require.Len(t, invites, 1)
	assert.Equal(t, "i1", invites[0].InvitationID)

	// No invitations yields an empty list, not null
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/invitations/pending/nobody", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var empty []models.Invitation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &empty))
	assert.Empty(t, empty)
}
