package services

import (
	cloudevents "github.com/cloudevents/sdk-go/v2"
	"github.com/google/uuid"
)

const eventSource = "stegoguard/image-service"

type imageSignedData struct {
	ImageID string `json:"image_id"`
	Name    string `json:"name"`
	Mode    string `json:"mode"`
}

type imageRejectedData struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// newImageEvent wraps data in a CloudEvent whose type is the topic.
func newImageEvent(topic string, data interface{}) (cloudevents.Event, error) {
	evt := cloudevents.NewEvent()
	evt.SetID(uuid.New().String())
	evt.SetSource(eventSource)
	evt.SetType(topic)
	if err := evt.SetData(cloudevents.ApplicationJSON, data); err != nil {
		return evt, err
	}
	return evt, nil
}
