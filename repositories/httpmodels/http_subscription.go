package httpmodels

import (
	"github.com/momconnect/hub/models"
)

// Payload shapes of the stage-based messaging service API. List endpoints
// are paginated the DRF way: count/next/previous/results.

type HTTPSubscription struct {
	Id                 string         `json:"id"`
	Identity           string         `json:"identity"`
	Active             bool           `json:"active"`
	Completed          bool           `json:"completed"`
	Lang               string         `json:"lang"`
	Messageset         int            `json:"messageset"`
	NextSequenceNumber int            `json:"next_sequence_number"`
	Schedule           int            `json:"schedule"`
	ProcessStatus      int            `json:"process_status"`
	Metadata           map[string]any `json:"metadata"`
}

type HTTPSubscriptionList struct {
	Count    int                `json:"count"`
	Next     *string            `json:"next"`
	Previous *string            `json:"previous"`
	Results  []HTTPSubscription `json:"results"`
}

func AdaptSubscription(http HTTPSubscription) models.Subscription {
	return models.Subscription{
		Id:                 http.Id,
		Identity:           http.Identity,
		Active:             http.Active,
		Completed:          http.Completed,
		Lang:               http.Lang,
		Messageset:         http.Messageset,
		NextSequenceNumber: http.NextSequenceNumber,
		Schedule:           http.Schedule,
	}
}

type HTTPMessageSet struct {
	Id              int    `json:"id"`
	ShortName       string `json:"short_name"`
	DefaultSchedule int    `json:"default_schedule"`
}

type HTTPMessageSetList struct {
	Count    int              `json:"count"`
	Next     *string          `json:"next"`
	Previous *string          `json:"previous"`
	Results  []HTTPMessageSet `json:"results"`
}

func AdaptMessageSet(http HTTPMessageSet) models.MessageSet {
	return models.MessageSet{
		Id:              http.Id,
		ShortName:       http.ShortName,
		DefaultSchedule: http.DefaultSchedule,
	}
}

type HTTPSchedule struct {
	Id int `json:"id"`
}

func AdaptSchedule(http HTTPSchedule) models.Schedule {
	return models.Schedule{
		Id: http.Id,
	}
}
