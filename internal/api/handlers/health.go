package handlers

import (
	"github.com/ashcraft-tech/contact-api/internal/utils"
	"github.com/ashcraft-tech/contact-api/internal/version"

	"github.com/gin-gonic/gin"
)

// HealthStatus reports which strategies the running process selected
type HealthStatus struct {
	Version   string `json:"version"`
	Transport string `json:"transport"`
	Verifier  string `json:"verifier"`
}

type HealthHandler struct {
	status HealthStatus
}

func NewHealthHandler(transport, verifier string) *HealthHandler {
	return &HealthHandler{status: HealthStatus{
		Version:   version.Version,
		Transport: transport,
		Verifier:  verifier,
	}}
}

func (h *HealthHandler) Check(c *gin.Context) {
	utils.HandleSuccess(c, "ok", h.status)
}
