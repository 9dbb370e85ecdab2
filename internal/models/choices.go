package models

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidStatus  = errors.New("invalid client status")
	ErrInvalidType    = errors.New("invalid interaction type")
	ErrInvalidChannel = errors.New("invalid interaction channel")
)

// Choice is a value/label pair rendered in select inputs.
type Choice struct {
	Value string
	Label string
}

type ClientStatus string

const (
	StatusActive    ClientStatus = "active"
	StatusInactive  ClientStatus = "inactive"
	StatusPotential ClientStatus = "potential"
	StatusArchived  ClientStatus = "archived"
)

var StatusChoices = []Choice{
	{Value: string(StatusActive), Label: "Active"},
	{Value: string(StatusInactive), Label: "Inactive"},
	{Value: string(StatusPotential), Label: "Potential"},
	{Value: string(StatusArchived), Label: "Archived"},
}

func (s ClientStatus) Valid() bool {
	return hasChoice(StatusChoices, string(s))
}

func (s ClientStatus) Label() string {
	return labelOf(StatusChoices, string(s))
}

// ParseClientStatus treats an empty value as the default status.
func ParseClientStatus(value string) (ClientStatus, error) {
	if value == "" {
		return StatusActive, nil
	}
	status := ClientStatus(value)
	if !status.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, value)
	}
	return status, nil
}

type InteractionType string

const (
	TypeMeeting   InteractionType = "meeting"
	TypeEmail     InteractionType = "email"
	TypeCall      InteractionType = "call"
	TypeProject   InteractionType = "project"
	TypeAgreement InteractionType = "agreement"
	TypeOther     InteractionType = "other"
)

var TypeChoices = []Choice{
	{Value: string(TypeMeeting), Label: "Meeting"},
	{Value: string(TypeEmail), Label: "Email"},
	{Value: string(TypeCall), Label: "Call"},
	{Value: string(TypeProject), Label: "Project participation"},
	{Value: string(TypeAgreement), Label: "Approval"},
	{Value: string(TypeOther), Label: "Other"},
}

func (t InteractionType) Valid() bool {
	return hasChoice(TypeChoices, string(t))
}

func (t InteractionType) Label() string {
	return labelOf(TypeChoices, string(t))
}

func ParseInteractionType(value string) (InteractionType, error) {
	t := InteractionType(value)
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidType, value)
	}
	return t, nil
}

type InteractionChannel string

const (
	ChannelPhone    InteractionChannel = "phone"
	ChannelEmail    InteractionChannel = "email"
	ChannelInPerson InteractionChannel = "in_person"
	ChannelOnline   InteractionChannel = "online"
	ChannelOther    InteractionChannel = "other"
)

var ChannelChoices = []Choice{
	{Value: string(ChannelPhone), Label: "Phone"},
	{Value: string(ChannelEmail), Label: "Email"},
	{Value: string(ChannelInPerson), Label: "In person"},
	{Value: string(ChannelOnline), Label: "Online"},
	{Value: string(ChannelOther), Label: "Other"},
}

func (c InteractionChannel) Valid() bool {
	return hasChoice(ChannelChoices, string(c))
}

func (c InteractionChannel) Label() string {
	return labelOf(ChannelChoices, string(c))
}

// ParseInteractionChannel returns nil for an empty value: the channel is optional.
func ParseInteractionChannel(value string) (*InteractionChannel, error) {
	if value == "" {
		return nil, nil
	}
	c := InteractionChannel(value)
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidChannel, value)
	}
	return &c, nil
}

func hasChoice(choices []Choice, value string) bool {
	for _, c := range choices {
		if c.Value == value {
			return true
		}
	}
	return false
}

func labelOf(choices []Choice, value string) string {
	for _, c := range choices {
		if c.Value == value {
			return c.Label
		}
	}
	return value
}
