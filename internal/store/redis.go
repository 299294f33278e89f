// internal/store/redis.go
package store

import (
	"context"
	"encoding/json"
	"time"

	"competition-intake/internal/common/database"
	"competition-intake/internal/common/errors"
	"competition-intake/internal/common/logger"
	"competition-intake/internal/common/metrics"
	"competition-intake/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	recordKeyPrefix  = "application:"
	emailKeyPrefix   = "email:"
	discordKeyPrefix = "discord:"
)

// RedisStore persists one JSON value per record under application:<id>.
// Uniqueness is enforced through secondary index keys (email:<normalized>,
// discord:<normalized>) claimed with SETNX before the record write, so two
// concurrent submissions with the same email cannot both pass the check.
type RedisStore struct {
	db     *database.RedisClient
	logger logger.Logger
	now    func() time.Time
}

func NewRedisStore(db *database.RedisClient, log logger.Logger) *RedisStore {
	return &RedisStore{
		db:     db,
		logger: log.WithFields(map[string]interface{}{"component": "store"}),
		now:    time.Now,
	}
}

func recordKey(id string) string          { return recordKeyPrefix + id }
func emailKey(normalized string) string   { return emailKeyPrefix + normalized }
func discordKey(normalized string) string { return discordKeyPrefix + normalized }

func (s *RedisStore) Create(ctx context.Context, sub *models.Submission) (*models.Application, error) {
	timer := time.Now()
	defer func() {
		metrics.StoreOperationDuration.WithLabelValues("create").Observe(time.Since(timer).Seconds())
	}()

	normEmail := models.NormalizeEmail(sub.Email)
	normDiscord := models.NormalizeDiscordID(sub.DiscordID)

	app := &models.Application{
		ID:        uuid.New().String(),
		CreatedAt: s.now().UTC().Format(time.RFC3339),

		Name:      sub.Name,
		Email:     sub.Email,
		DiscordID: sub.DiscordID,

		TeamName:                  sub.TeamName,
		TeamMembers:               sub.TeamMembers,
		TeamExperience:            sub.TeamExperience,
		PreviousProjects:          sub.PreviousProjects,
		TeamExperienceDescription: sub.TeamExperienceDescription,

		GameTitle:      sub.GameTitle,
		GameConcept:    sub.GameConcept,
		WhyWin:         sub.WhyWin,
		WhyPlayersLike: sub.WhyPlayersLike,

		PromotionPlan:       sub.PromotionPlan,
		MonetizationPlan:    sub.MonetizationPlan,
		ProjectedDAU:        sub.ProjectedDAU,
		DayOneRetention:     sub.DayOneRetention,
		DevelopmentTimeline: sub.DevelopmentTimeline,
		ResourcesTools:      sub.ResourcesTools,
	}

	// Email is reserved first: a submission colliding on both fields must
	// report the email duplicate.
	claimed, err := s.db.SetNX(ctx, emailKey(normEmail), app.ID, 0)
	if err != nil {
		return nil, errors.NewStorageUnavailableError(err)
	}
	if !claimed {
		return nil, errors.NewDuplicateEmailError(normEmail)
	}

	claimed, err = s.db.SetNX(ctx, discordKey(normDiscord), app.ID, 0)
	if err != nil {
		s.release(ctx, emailKey(normEmail))
		return nil, errors.NewStorageUnavailableError(err)
	}
	if !claimed {
		s.release(ctx, emailKey(normEmail))
		return nil, errors.NewDuplicateDiscordIDError(normDiscord)
	}

	payload, err := json.Marshal(app)
	if err != nil {
		s.release(ctx, emailKey(normEmail), discordKey(normDiscord))
		return nil, errors.NewStorageUnavailableError(err)
	}

	// Single atomic put of the whole record; no partial-write state is
	// observable under this key.
	if err := s.db.Set(ctx, recordKey(app.ID), payload, 0); err != nil {
		s.release(ctx, emailKey(normEmail), discordKey(normDiscord))
		return nil, errors.NewStorageUnavailableError(err)
	}

	s.logger.Info("application record created", map[string]interface{}{
		"applicationId": app.ID,
		"email":         normEmail,
		"discordId":     normDiscord,
	})

	return app, nil
}

func (s *RedisStore) List(ctx context.Context) ([]models.Application, error) {
	timer := time.Now()
	defer func() {
		metrics.StoreOperationDuration.WithLabelValues("list").Observe(time.Since(timer).Seconds())
	}()

	keys, err := s.db.Keys(ctx, recordKeyPrefix+"*")
	if err != nil {
		return nil, errors.NewStorageUnavailableError(err)
	}

	apps := make([]models.Application, 0, len(keys))
	for _, key := range keys {
		raw, err := s.db.Get(ctx, key)
		if err == redis.Nil {
			// Deleted between KEYS and GET; not an error.
			continue
		}
		if err != nil {
			return nil, errors.NewStorageUnavailableError(err)
		}

		var app models.Application
		if err := json.Unmarshal([]byte(raw), &app); err != nil {
			// Corruption is isolated per record: drop it, keep the listing.
			metrics.CorruptRecordsDropped.Inc()
			s.logger.WithError(errors.NewRecordCorruptError(key, err)).Warn(
				"dropping unparseable record from listing",
				map[string]interface{}{"key": key},
			)
			continue
		}
		apps = append(apps, app)
	}

	return apps, nil
}

func (s *RedisStore) GetByID(ctx context.Context, id string) (*models.Application, error) {
	timer := time.Now()
	defer func() {
		metrics.StoreOperationDuration.WithLabelValues("get").Observe(time.Since(timer).Seconds())
	}()

	raw, err := s.db.Get(ctx, recordKey(id))
	if err == redis.Nil {
		return nil, errors.NewApplicationNotFoundError(id)
	}
	if err != nil {
		return nil, errors.NewStorageUnavailableError(err)
	}

	var app models.Application
	if err := json.Unmarshal([]byte(raw), &app); err != nil {
		return nil, errors.NewRecordCorruptError(recordKey(id), err)
	}
	return &app, nil
}

func (s *RedisStore) DeleteByID(ctx context.Context, id string) error {
	timer := time.Now()
	defer func() {
		metrics.StoreOperationDuration.WithLabelValues("delete").Observe(time.Since(timer).Seconds())
	}()

	raw, err := s.db.Get(ctx, recordKey(id))
	if err == redis.Nil {
		return errors.NewApplicationNotFoundError(id)
	}
	if err != nil {
		return errors.NewStorageUnavailableError(err)
	}

	keys := []string{recordKey(id)}
	var app models.Application
	if err := json.Unmarshal([]byte(raw), &app); err == nil {
		keys = append(keys,
			emailKey(models.NormalizeEmail(app.Email)),
			discordKey(models.NormalizeDiscordID(app.DiscordID)),
		)
	} else {
		// The record key still goes away; its reservations cannot be recovered
		// from a corrupt payload.
		s.logger.WithError(err).Warn("deleting corrupt record without index cleanup",
			map[string]interface{}{"applicationId": id})
	}

	if err := s.db.Del(ctx, keys...); err != nil {
		return errors.NewStorageUnavailableError(err)
	}

	s.logger.Info("application record deleted", map[string]interface{}{
		"applicationId": id,
	})
	return nil
}

func (s *RedisStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	n, err := s.db.Exists(ctx, emailKey(models.NormalizeEmail(email)))
	if err != nil {
		return false, errors.NewStorageUnavailableError(err)
	}
	return n > 0, nil
}

func (s *RedisStore) ExistsByDiscordID(ctx context.Context, discordID string) (bool, error) {
	n, err := s.db.Exists(ctx, discordKey(models.NormalizeDiscordID(discordID)))
	if err != nil {
		return false, errors.NewStorageUnavailableError(err)
	}
	return n > 0, nil
}

// release best-effort deletes reservation keys after a failed create.
func (s *RedisStore) release(ctx context.Context, keys ...string) {
	if err := s.db.Del(ctx, keys...); err != nil {
		s.logger.WithError(err).Warn("failed to release reservation keys",
			map[string]interface{}{"keys": keys})
	}
}
