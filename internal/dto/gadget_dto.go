package dto

import "github.com/imf-ops/gadget-api/internal/models"

type CreateGadgetRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// UpdateGadgetRequest is a partial patch; nil fields are left untouched.
type UpdateGadgetRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
}

// GadgetResponse decorates a gadget with a freshly drawn mission success
// probability. The probability is recomputed on every read and never stored.
type GadgetResponse struct {
	models.Gadget
	MissionSuccessProbability string `json:"mission_success_probability,omitempty"`
}

type GadgetListResponse struct {
	Message string           `json:"message"`
	Count   int              `json:"count"`
	Gadgets []GadgetResponse `json:"gadgets"`
}

type GadgetEnvelope struct {
	Message string         `json:"message"`
	Gadget  GadgetResponse `json:"gadget"`
}

type DecommissionResponse struct {
	Message string        `json:"message"`
	Gadget  models.Gadget `json:"gadget"`
}

type SelfDestructResponse struct {
	Message          string        `json:"message"`
	ConfirmationCode string        `json:"confirmation_code"`
	Gadget           models.Gadget `json:"gadget"`
	Warning          string        `json:"warning"`
}
