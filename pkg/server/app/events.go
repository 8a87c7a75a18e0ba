/* Copyright 2025 Chronicle Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package app

import (
	"context"
	"encoding/json"

	"github.com/chronicle/chronicle/pkg/event"
	"github.com/chronicle/chronicle/pkg/server/cache"
	"github.com/chronicle/chronicle/pkg/server/database"
	"github.com/chronicle/chronicle/pkg/server/helpers"
	"github.com/chronicle/chronicle/pkg/server/log"
	"github.com/chronicle/chronicle/pkg/server/permissions"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// publicFeedKey is the cache key of the public feed
const publicFeedKey = "events:public"

// contentColumns are the columns a replace overwrites
var contentColumns = []string{"title", "body", "date", "time", "images", "location", "weather", "public", "tag"}

func validateEvent(e event.Event) error {
	if err := event.Validate(e); err != nil {
		return errors.Wrap(ErrInvalidEvent, err.Error())
	}

	return nil
}

// fill copies the content fields of e into the row
func fill(row *database.Event, e event.Event) error {
	row.Title = e.Title
	row.Body = e.Body
	row.Date = e.Date
	row.Time = e.Time
	row.Location = e.Location
	row.Weather = e.Weather
	row.Public = e.IsPublic
	row.Tag = e.Tag

	return row.SetImageURLs(e.Images)
}

// invalidatePublicFeed drops the cached feed. A cache failure only delays
// the change until the entry expires.
func (a *App) invalidatePublicFeed(ctx context.Context) {
	if err := a.Cache.Delete(ctx, publicFeedKey); err != nil {
		log.WithFields(log.Fields{
			"key": publicFeedKey,
		}).ErrorWrap(err, "invalidating public feed")
	}
}

// CreateEvent stores the event as a new document owned by the user and
// returns its key. The document starts with an empty event id.
func (a *App) CreateEvent(ctx context.Context, user database.User, e event.Event) (database.Event, error) {
	if e.UserID != "" && e.UserID != user.UUID {
		return database.Event{}, ErrForbidden
	}
	if err := validateEvent(e); err != nil {
		return database.Event{}, err
	}

	key, err := helpers.GenUUID()
	if err != nil {
		return database.Event{}, err
	}

	row := database.Event{
		UUID:     key,
		UserUUID: user.UUID,
	}
	if err := fill(&row, e); err != nil {
		return database.Event{}, err
	}

	if err := a.DB.WithContext(ctx).Create(&row).Error; err != nil {
		return database.Event{}, errors.Wrap(err, "inserting event")
	}

	if row.Public {
		a.invalidatePublicFeed(ctx)
	}

	return row, nil
}

// getEvent finds the document with the key
func (a *App) getEvent(ctx context.Context, key string) (database.Event, error) {
	var row database.Event
	err := a.DB.WithContext(ctx).Where("uuid = ?", key).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return database.Event{}, ErrNotFound
	} else if err != nil {
		return database.Event{}, errors.Wrap(err, "finding event")
	}

	return row, nil
}

// getEditableEvent finds the document with the key and checks that the
// user may change it
func (a *App) getEditableEvent(ctx context.Context, user database.User, key string) (database.Event, error) {
	row, err := a.getEvent(ctx, key)
	if err != nil {
		return database.Event{}, err
	}

	if !permissions.EditEvent(&user, row) {
		return database.Event{}, ErrForbidden
	}

	return row, nil
}

// GetEvent returns the document with the key if the user may view it. A
// nil user only sees public documents.
func (a *App) GetEvent(ctx context.Context, user *database.User, key string) (database.Event, error) {
	row, err := a.getEvent(ctx, key)
	if err != nil {
		return database.Event{}, err
	}

	if !permissions.ViewEvent(user, row) {
		return database.Event{}, ErrNotFound
	}

	return row, nil
}

// SetEventID stores eventID as the event id of the document with the key.
// Only the document key itself is accepted as its event id.
func (a *App) SetEventID(ctx context.Context, user database.User, key, eventID string) (database.Event, error) {
	if eventID != key {
		return database.Event{}, errors.Wrapf(ErrInvalidEvent, "event id '%s' does not match the document key", eventID)
	}

	row, err := a.getEditableEvent(ctx, user, key)
	if err != nil {
		return database.Event{}, err
	}

	if err := a.DB.WithContext(ctx).Model(&row).Update("event_id", eventID).Error; err != nil {
		return database.Event{}, errors.Wrap(err, "updating event id")
	}
	row.EventID = eventID

	if row.Public {
		a.invalidatePublicFeed(ctx)
	}

	return row, nil
}

// ReplaceEvent overwrites the content of the document with the key. The
// key, the event id and the owner of the document never change.
func (a *App) ReplaceEvent(ctx context.Context, user database.User, key string, e event.Event) (database.Event, error) {
	if e.EventID != "" && e.EventID != key {
		return database.Event{}, errors.Wrapf(ErrInvalidEvent, "event id '%s' does not match the document key", e.EventID)
	}
	if err := validateEvent(e); err != nil {
		return database.Event{}, err
	}

	row, err := a.getEditableEvent(ctx, user, key)
	if err != nil {
		return database.Event{}, err
	}

	wasPublic := row.Public
	if err := fill(&row, e); err != nil {
		return database.Event{}, err
	}

	if err := a.DB.WithContext(ctx).Model(&row).Select(contentColumns).Updates(&row).Error; err != nil {
		return database.Event{}, errors.Wrap(err, "saving event")
	}

	if wasPublic || row.Public {
		a.invalidatePublicFeed(ctx)
	}

	return row, nil
}

// DeleteEvent removes the document with the key
func (a *App) DeleteEvent(ctx context.Context, user database.User, key string) error {
	row, err := a.getEditableEvent(ctx, user, key)
	if err != nil {
		return err
	}

	if err := a.DB.WithContext(ctx).Delete(&row).Error; err != nil {
		return errors.Wrap(err, "deleting event")
	}

	if row.Public {
		a.invalidatePublicFeed(ctx)
	}

	return nil
}

// GetUserEvents returns the events of the user in the order they were
// created
func (a *App) GetUserEvents(ctx context.Context, user database.User) ([]database.Event, error) {
	ret := []database.Event{}
	if err := a.DB.WithContext(ctx).Where("user_uuid = ?", user.UUID).Order("id ASC").Find(&ret).Error; err != nil {
		return nil, errors.Wrap(err, "finding events")
	}

	return ret, nil
}

// GetUserEventsOnDate returns the events of the user on the date
func (a *App) GetUserEventsOnDate(ctx context.Context, user database.User, date string) ([]database.Event, error) {
	if _, err := event.ParseDate(date); err != nil {
		return nil, errors.Wrap(ErrInvalidEvent, err.Error())
	}

	ret := []database.Event{}
	if err := a.DB.WithContext(ctx).Where("user_uuid = ? AND date = ?", user.UUID, date).Order("id ASC").Find(&ret).Error; err != nil {
		return nil, errors.Wrap(err, "finding events")
	}

	return ret, nil
}

func (a *App) queryPublicEvents(ctx context.Context) ([]database.Event, error) {
	ret := []database.Event{}
	if err := a.DB.WithContext(ctx).Where("public = ?", true).Order("date DESC").Order("id ASC").Find(&ret).Error; err != nil {
		return nil, errors.Wrap(err, "finding public events")
	}

	return ret, nil
}

// GetPublicEvents returns the public events of all users from the most
// recent date. The result is served from the cache when possible.
func (a *App) GetPublicEvents(ctx context.Context) ([]database.Event, error) {
	b, err := a.Cache.Get(ctx, publicFeedKey)
	if err == nil {
		var ret []database.Event
		if err := json.Unmarshal(b, &ret); err == nil {
			return ret, nil
		}

		log.WithFields(log.Fields{
			"key": publicFeedKey,
		}).Warn("discarding malformed cache entry")
	} else if errors.Cause(err) != cache.ErrMiss {
		log.ErrorWrap(err, "reading public feed from cache")
	}

	ret, err := a.queryPublicEvents(ctx)
	if err != nil {
		return nil, err
	}

	if b, err := json.Marshal(ret); err != nil {
		log.ErrorWrap(err, "encoding public feed")
	} else if err := a.Cache.Set(ctx, publicFeedKey, b, a.publicFeedTTL()); err != nil {
		log.ErrorWrap(err, "caching public feed")
	}

	return ret, nil
}

// GetRemindersOn returns the Reminder events dated on date grouped by the
// uuid of their owner
func (a *App) GetRemindersOn(ctx context.Context, date string) (map[string][]database.Event, error) {
	rows := []database.Event{}
	if err := a.DB.WithContext(ctx).Where("tag = ? AND date = ?", event.TagReminder, date).Order("time ASC").Order("id ASC").Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "finding reminders")
	}

	ret := map[string][]database.Event{}
	for _, r := range rows {
		ret[r.UserUUID] = append(ret[r.UserUUID], r)
	}

	return ret, nil
}
