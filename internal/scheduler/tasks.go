package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskCallFanout = "matching.call.fanout"

const TaskProfileFanout = "matching.profile.fanout"

type CallFanoutPayload struct {
	CallID string `json:"callId"`
}

type ProfileFanoutPayload struct {
	ProfileID string `json:"profileId"`
}

func NewCallFanoutTask(payload CallFanoutPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskCallFanout, data), nil
}

func ParseCallFanoutPayload(task *asynq.Task) (CallFanoutPayload, error) {
	var payload CallFanoutPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return CallFanoutPayload{}, err
	}
	return payload, nil
}

func NewProfileFanoutTask(payload ProfileFanoutPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskProfileFanout, data), nil
}

func ParseProfileFanoutPayload(task *asynq.Task) (ProfileFanoutPayload, error) {
	var payload ProfileFanoutPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return ProfileFanoutPayload{}, err
	}
	return payload, nil
}
