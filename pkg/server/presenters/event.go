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

package presenters

import (
	"github.com/chronicle/chronicle/pkg/event"
	"github.com/chronicle/chronicle/pkg/server/database"
	"github.com/chronicle/chronicle/pkg/server/log"
)

// PresentEvent converts the row into the event exchanged with clients. A
// row whose image list cannot be decoded is presented without images.
func PresentEvent(row database.Event) event.Event {
	images, err := row.ImageURLs()
	if err != nil {
		log.WithFields(log.Fields{
			"eventUUID": row.UUID,
		}).ErrorWrap(err, "decoding images")
		images = []string{}
	}

	return event.Event{
		EventID:  row.EventID,
		UserID:   row.UserUUID,
		Title:    row.Title,
		Body:     row.Body,
		Date:     row.Date,
		Time:     row.Time,
		Images:   images,
		Location: row.Location,
		Weather:  row.Weather,
		IsPublic: row.Public,
		Tag:      row.Tag,
	}
}

// PresentEvents converts the rows keeping their order
func PresentEvents(rows []database.Event) []event.Event {
	ret := make([]event.Event, 0, len(rows))
	for _, r := range rows {
		ret = append(ret, PresentEvent(r))
	}

	return ret
}
