package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/d2inventory/motioncore/internal/motion"
	"github.com/d2inventory/motioncore/internal/types"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MotionCommandRequest wraps one command for the dispatcher. Kind is
// the command name, the remaining fields land in the flat command
// record as-is.
type MotionCommandRequest struct {
	Kind   string         `json:"kind" binding:"required"`
	Params motion.Command `json:"params"`
}

type MotionCommandResponse struct {
	Seq    uint32 `json:"seq"`
	Result string `json:"result"`
}

// GET /api/v1/motion/status
func (s *Server) getMotionStatus(c *gin.Context) {
	c.JSON(http.StatusOK, s.lm.Controller().Snapshot())
}

// POST /api/v1/motion/command
func (s *Server) submitMotionCommand(c *gin.Context) {
	var req MotionCommandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.CodeInvalidRequest, "Invalid request body", err.Error()))
		return
	}

	kind, err := motion.ParseKind(req.Kind)
	if err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.CodeInvalidRequest, "Unknown command kind", err.Error()))
		return
	}

	cmd := req.Params
	cmd.Kind = kind

	// One control cycle is normally enough; the timeout covers a
	// stalled loop without hanging the request forever.
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	seq, result, err := s.lm.Producer().Submit(ctx, cmd)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			c.JSON(http.StatusGatewayTimeout, types.NewErrorResponse(types.CodeCommandTimeout, "Command not acknowledged in time", nil))
			return
		}
		s.logger.Error("Command submission failed",
			zap.String("kind", req.Kind),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.CodeInternal, "Command submission failed", err.Error()))
		return
	}

	s.auditCommand(c, seq, kind, result, cmd)

	if result != motion.ResultOk {
		c.JSON(http.StatusUnprocessableEntity, types.NewErrorResponse(types.CodeCommandRejected, "Command rejected", result.String()))
		return
	}

	c.JSON(http.StatusOK, MotionCommandResponse{
		Seq:    seq,
		Result: result.String(),
	})
}

// GET /api/v1/motion/errors drains the pending diagnostic queue.
func (s *Server) getMotionErrors(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"diagnostics": s.lm.Controller().Reporter().Drain(),
	})
}

// GET /api/v1/motion/log returns the recorded command log entries.
func (s *Server) getCommandLog(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"entries": s.lm.Controller().CommandLog(),
	})
}

// POST /api/v1/motion/profile
func (s *Server) applyProfile(c *gin.Context) {
	var req struct {
		Profile string `json:"profile" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.CodeInvalidRequest, "Invalid request body", err.Error()))
		return
	}

	if err := s.lm.ApplyProfile(req.Profile); err != nil {
		c.JSON(http.StatusUnprocessableEntity, types.NewErrorResponse(types.CodeInvalidRequest, "Profile rejected", err.Error()))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile applied",
		"profile": req.Profile,
	})
}

// GET /api/v1/audit/commands
func (s *Server) getCommandAudit(c *gin.Context) {
	store := s.lm.Storage()
	if store == nil {
		c.JSON(http.StatusServiceUnavailable, types.NewErrorResponse(types.CodeInternal, "Audit storage not configured", nil))
		return
	}

	limit := auditLimit(c)
	audits, err := store.RecentCommands(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.CodeInternal, "Failed to load audit trail", err.Error()))
		return
	}

	c.JSON(http.StatusOK, gin.H{"commands": audits})
}

// GET /api/v1/audit/diagnostics
func (s *Server) getDiagnosticAudit(c *gin.Context) {
	store := s.lm.Storage()
	if store == nil {
		c.JSON(http.StatusServiceUnavailable, types.NewErrorResponse(types.CodeInternal, "Audit storage not configured", nil))
		return
	}

	limit := auditLimit(c)
	records, err := store.RecentDiagnostics(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.CodeInternal, "Failed to load diagnostics", err.Error()))
		return
	}

	c.JSON(http.StatusOK, gin.H{"diagnostics": records})
}

// auditCommand records the dispatched command in the audit trail when
// storage is configured. Failures are logged, not surfaced.
func (s *Server) auditCommand(c *gin.Context, seq uint32, kind motion.Kind, result motion.ResultCode, cmd motion.Command) {
	store := s.lm.Storage()
	if store == nil {
		return
	}

	operator, _ := c.Get("username")
	name, _ := operator.(string)
	payload, _ := json.Marshal(cmd)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := store.LogCommand(ctx, seq, kind.String(), result.String(), name, payload); err != nil {
			s.logger.Warn("Failed to audit command", zap.Error(err))
		}
	}()
}

func auditLimit(c *gin.Context) int {
	limit := 100
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 1000 {
			limit = n
		}
	}
	return limit
}
