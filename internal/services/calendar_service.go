package services

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"gorm.io/gorm"

	"github.com/ourpr/ourpr-backend/internal/logger"
	"github.com/ourpr/ourpr-backend/internal/plan"
	"github.com/ourpr/ourpr-backend/internal/repos"
	"github.com/ourpr/ourpr-backend/internal/types"
)

const oauthStateTTL = 10 * time.Minute

// ErrCalendarNotConnected means the user has no stored Google refresh token.
var ErrCalendarNotConnected = errors.New("google account not connected")

// SyncResult reports what a calendar sync or unsync actually did.
type SyncResult struct {
	EventsChanged int  `json:"events_changed"`
	PlanUpdated   bool `json:"plan_updated"`
}

type CalendarService interface {
	AuthURL(ctx context.Context, userID uuid.UUID) (string, error)
	// HandleCallback finishes the OAuth round trip and returns the frontend
	// URL to redirect to.
	HandleCallback(ctx context.Context, state, code string) (string, error)
	SyncPlan(ctx context.Context, userID, raceID uuid.UUID) (*SyncResult, error)
	UnsyncPlan(ctx context.Context, userID, raceID uuid.UUID) (*SyncResult, error)
	Disconnect(ctx context.Context, userID uuid.UUID) error
}

type calendarService struct {
	db          *gorm.DB
	log         *logger.Logger
	authRepo    repos.CalendarAuthRepo
	stateRepo   repos.OAuthStateRepo
	planService PlanService
	cipher      *tokenCipher
	oauthConfig *oauth2.Config
	frontendURL string
}

func NewCalendarService(
	db *gorm.DB,
	baseLog *logger.Logger,
	authRepo repos.CalendarAuthRepo,
	stateRepo repos.OAuthStateRepo,
	planService PlanService,
) (CalendarService, error) {
	cipher, err := newTokenCipherFromEnv()
	if err != nil {
		return nil, err
	}

	clientID := os.Getenv("GOOGLE_CLIENT_ID")
	clientSecret := os.Getenv("GOOGLE_CLIENT_SECRET")
	redirectURI := os.Getenv("GOOGLE_REDIRECT_URI")
	if clientID == "" || clientSecret == "" || redirectURI == "" {
		return nil, fmt.Errorf("missing GOOGLE_CLIENT_ID, GOOGLE_CLIENT_SECRET or GOOGLE_REDIRECT_URI")
	}

	frontendURL := os.Getenv("FRONTEND_URL")
	if frontendURL == "" {
		frontendURL = "http://localhost:3000"
	}

	return &calendarService{
		db:          db,
		log:         baseLog.With("service", "CalendarService"),
		authRepo:    authRepo,
		stateRepo:   stateRepo,
		planService: planService,
		cipher:      cipher,
		oauthConfig: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURI,
			Scopes:       []string{calendar.CalendarEventsScope},
			Endpoint:     google.Endpoint,
		},
		frontendURL: frontendURL,
	}, nil
}

func (s *calendarService) AuthURL(ctx context.Context, userID uuid.UUID) (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	token := base64.RawURLEncoding.EncodeToString(raw)

	if err := s.stateRepo.Create(ctx, nil, &types.OAuthState{
		Token:     token,
		UserID:    userID,
		ExpiresAt: time.Now().UTC().Add(oauthStateTTL),
	}); err != nil {
		return "", err
	}

	if deleted, err := s.stateRepo.DeleteExpired(ctx, nil); err != nil {
		s.log.Warn("Failed to sweep expired oauth states", "error", err)
	} else if deleted > 0 {
		s.log.Debug("Swept expired oauth states", "count", deleted)
	}

	url := s.oauthConfig.AuthCodeURL(token,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
	)
	return url, nil
}

func (s *calendarService) HandleCallback(ctx context.Context, state, code string) (string, error) {
	record, err := s.stateRepo.Consume(ctx, nil, state)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", fmt.Errorf("oauth state invalid or expired: %w", ErrForbidden)
	}
	if err != nil {
		return "", err
	}

	token, err := s.oauthConfig.Exchange(ctx, code)
	if err != nil {
		return "", fmt.Errorf("oauth code exchange failed: %w", err)
	}
	if token.RefreshToken == "" {
		return "", fmt.Errorf("google did not return a refresh token")
	}

	encrypted, err := s.cipher.Encrypt(token.RefreshToken)
	if err != nil {
		return "", err
	}
	if err := s.authRepo.Upsert(ctx, nil, &types.CalendarAuth{
		UserID:                record.UserID,
		EncryptedRefreshToken: encrypted,
	}); err != nil {
		return "", err
	}

	s.log.Info("Google Calendar connected", "user_id", record.UserID)
	return s.frontendURL + "/plan?google_connected=true", nil
}

func (s *calendarService) Disconnect(ctx context.Context, userID uuid.UUID) error {
	return s.authRepo.DeleteByUser(ctx, nil, userID)
}

func (s *calendarService) SyncPlan(ctx context.Context, userID, raceID uuid.UUID) (*SyncResult, error) {
	svc, err := s.calendarClient(ctx, userID)
	if err != nil {
		return nil, err
	}

	p, err := s.planService.Get(ctx, userID, raceID)
	if err != nil {
		return nil, err
	}

	result := &SyncResult{}
	for wi := range p.Weeks {
		week := &p.Weeks[wi]
		for di := range week.Days {
			day := &week.Days[di]
			if day.GoogleEventID != "" || day.WorkoutType == "Rest" {
				continue
			}

			event := buildDayEvent(p, week, day)
			created, err := svc.Events.Insert("primary", event).Context(ctx).Do()
			if err != nil {
				s.log.Warn("Failed to create calendar event", "date", day.Date, "error", err)
				continue
			}
			day.GoogleEventID = created.Id
			result.EventsChanged++
			result.PlanUpdated = true
		}
	}

	if result.PlanUpdated {
		if _, err := s.planService.ReplaceStructure(ctx, userID, raceID, mustPlanJSON(p)); err != nil {
			s.log.Error("Events created but plan save failed", "race_id", raceID, "error", err)
			return result, err
		}
	}
	return result, nil
}

func (s *calendarService) UnsyncPlan(ctx context.Context, userID, raceID uuid.UUID) (*SyncResult, error) {
	svc, err := s.calendarClient(ctx, userID)
	if errors.Is(err, ErrCalendarNotConnected) {
		return &SyncResult{}, nil
	}
	if err != nil {
		return nil, err
	}

	p, err := s.planService.Get(ctx, userID, raceID)
	if errors.Is(err, ErrNotFound) {
		return &SyncResult{}, nil
	}
	if err != nil {
		return nil, err
	}

	result := &SyncResult{}
	for wi := range p.Weeks {
		week := &p.Weeks[wi]
		for di := range week.Days {
			day := &week.Days[di]
			if day.GoogleEventID == "" {
				continue
			}
			if err := svc.Events.Delete("primary", day.GoogleEventID).Context(ctx).Do(); err != nil && !isGone(err) {
				s.log.Warn("Failed to delete calendar event", "event_id", day.GoogleEventID, "error", err)
				continue
			}
			day.GoogleEventID = ""
			result.EventsChanged++
			result.PlanUpdated = true
		}
	}

	if result.PlanUpdated {
		if _, err := s.planService.ReplaceStructure(ctx, userID, raceID, mustPlanJSON(p)); err != nil {
			return result, err
		}
	}
	return result, nil
}

func (s *calendarService) calendarClient(ctx context.Context, userID uuid.UUID) (*calendar.Service, error) {
	auth, err := s.authRepo.GetByUser(ctx, nil, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCalendarNotConnected
	}
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.cipher.Decrypt(auth.EncryptedRefreshToken)
	if err != nil {
		return nil, fmt.Errorf("stored refresh token unreadable: %w", err)
	}

	tokenSource := s.oauthConfig.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken})
	return calendar.NewService(ctx, option.WithTokenSource(tokenSource))
}

type workoutFlavor struct {
	Emoji      string
	Motivation string
}

var workoutFlavors = map[string]workoutFlavor{
	"Easy Run":       {"👟", "Focus on conversational pace to build your aerobic base."},
	"Tempo Run":      {"💨", "Push your threshold, stay comfortably hard!"},
	"Intervals":      {"⚡", "Boost speed and efficiency with these bursts."},
	"Speed Work":     {"🚀", "Improve your top-end speed and running form."},
	"Long Run":       {"🗺️", "Build endurance and mental toughness for race day."},
	"Rest":           {"😴", "Recovery is key! Let your body rebuild."},
	"Cross-Training": {"🚴", "Build fitness while giving your running muscles a break."},
	"Strength":       {"🏋️", "Strengthen supporting muscles to prevent injuries."},
	"Race Pace":      {"🏁", "Get comfortable with your target race effort."},
	"Warm-up":        {"🔥", "Prepare your body for the work ahead."},
	"Cool-down":      {"🧊", "Help your body recover and reduce soreness."},
	"Other":          {"🤔", "Listen to your body and enjoy the activity!"},
}

func buildDayEvent(p *plan.DetailedPlan, week *plan.Week, day *plan.Day) *calendar.Event {
	flavor, ok := workoutFlavors[day.WorkoutType]
	if !ok {
		flavor = workoutFlavors["Other"]
	}

	parts := []string{
		fmt.Sprintf("%s <b>Workout Type:</b> %s", flavor.Emoji, day.WorkoutType),
		fmt.Sprintf("🗓️ <b>Plan Week:</b> %d, <b>Day:</b> %s", week.WeekNumber, day.DayOfWeek),
		fmt.Sprintf("<br><b>Details:</b> %s", day.Description),
	}
	if day.Distance != "" {
		parts = append(parts, fmt.Sprintf("📏 <b>Distance:</b> %s", day.Distance))
	}
	if day.Duration != "" {
		parts = append(parts, fmt.Sprintf("⏱️ <b>Duration:</b> %s", day.Duration))
	}
	if day.Intensity != "" {
		parts = append(parts, fmt.Sprintf("⚡ <b>Intensity:</b> %s", day.Intensity))
	}
	parts = append(parts, fmt.Sprintf("<br>💡 <i>%s</i>", flavor.Motivation))
	if len(day.Notes) > 0 {
		parts = append(parts, fmt.Sprintf("<br>📝 <b>Notes:</b> %s", strings.Join(day.Notes, "; ")))
	}

	return &calendar.Event{
		Summary:     fmt.Sprintf("%s %s (%s)", flavor.Emoji, day.WorkoutType, p.RaceName),
		Description: strings.Join(parts, "<br>"),
		Start:       &calendar.EventDateTime{Date: day.Date},
		End:         &calendar.EventDateTime{Date: day.Date},
	}
}

func mustPlanJSON(p *plan.DetailedPlan) json.RawMessage {
	doc, err := json.Marshal(p)
	if err != nil {
		// A DetailedPlan always marshals.
		panic(err)
	}
	return doc
}

func isGone(err error) bool {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusNotFound || apiErr.Code == http.StatusGone
	}
	return false
}
