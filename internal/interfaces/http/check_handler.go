package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ObraStock-api/internal/application/checks"
	"github.com/jhoicas/ObraStock-api/internal/application/dto"
	"github.com/jhoicas/ObraStock-api/internal/domain/entity"
	"github.com/jhoicas/ObraStock-api/internal/domain/repository"
)

// CheckHandler maneja las auditorías ciegas y los auto-reportes de
// reconciliación.
type CheckHandler struct {
	audit          *checks.AuditUseCase
	reconciliation *checks.ReconciliationUseCase
	checkRepo      repository.CheckRepository
}

// NewCheckHandler construye el handler de conteos.
func NewCheckHandler(audit *checks.AuditUseCase, reconciliation *checks.ReconciliationUseCase, checkRepo repository.CheckRepository) *CheckHandler {
	return &CheckHandler{audit: audit, reconciliation: reconciliation, checkRepo: checkRepo}
}

// StartAudit godoc
// @Summary      Abrir auditoría ciega
// @Description  Genera las líneas a contar (materiales indicados o todo saldo positivo). Solo una auditoría abierta por contratista.
// @Tags         audits
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StartAuditRequest  true  "contractor_id, audit_type (SCHEDULED|SURPRISE|FOLLOW_UP)"
// @Success      201   {object}  dto.CheckWithLinesResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/audits [post]
func (h *CheckHandler) StartAudit(c *fiber.Ctx) error {
	var in dto.StartAuditRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	checkDate, err := parseDate(in.CheckDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "check_date debe ser YYYY-MM-DD"})
	}
	check, lines, err := h.audit.Start(c.Context(), checks.StartAuditInput{
		ContractorID: in.ContractorID,
		AuditType:    in.AuditType,
		CheckDate:    checkDate,
		Auditor:      GetUserID(c),
		MaterialIDs:  in.MaterialIDs,
		Notes:        in.Notes,
	})
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromCheckWithLines(check, lines))
}

// GetAudit godoc
// @Summary      Ver auditoría
// @Description  Mientras está en fase ciega, las líneas salen sin esperado ni varianza.
// @Tags         audits
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la auditoría"
// @Success      200  {object}  dto.CheckWithLinesResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/audits/{id} [get]
func (h *CheckHandler) GetAudit(c *fiber.Ctx) error {
	check, lines, err := h.audit.VisibleLines(c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(dto.FromCheckWithLines(check, lines))
}

// EnterCount registra el conteo físico de un material de la auditoría.
func (h *CheckHandler) EnterCount(c *fiber.Ctx) error {
	var in dto.EnterCountRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.audit.EnterCount(c.Context(), c.Params("id"), in.MaterialID, in.PhysicalCount, in.Notes); err != nil {
		return respondDomainError(c, err)
	}
	return h.GetAudit(c)
}

// SubmitAudit godoc
// @Summary      Enviar auditoría
// @Description  Cierre irrevocable de la captura: exige todas las líneas contadas.
// @Tags         audits
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la auditoría"
// @Success      200  {object}  dto.CheckWithLinesResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/audits/{id}/submit [post]
func (h *CheckHandler) SubmitAudit(c *fiber.Ctx) error {
	if err := h.audit.Submit(c.Context(), c.Params("id")); err != nil {
		return respondDomainError(c, err)
	}
	return h.GetAudit(c)
}

// AnalyzeAudit godoc
// @Summary      Analizar auditoría
// @Description  Calcula esperado, varianza y umbral por línea bajo bloqueo, y registra anomalías.
// @Tags         audits
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la auditoría"
// @Success      200  {object}  dto.CheckWithLinesResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/audits/{id}/analyze [post]
func (h *CheckHandler) AnalyzeAudit(c *fiber.Ctx) error {
	if err := h.audit.Analyze(c.Context(), c.Params("id")); err != nil {
		return respondDomainError(c, err)
	}
	return h.GetAudit(c)
}

// AcceptAuditCounts corrige los saldos a lo contado y estampa resolved_at.
func (h *CheckHandler) AcceptAuditCounts(c *fiber.Ctx) error {
	if err := h.audit.AcceptCounts(c.Context(), c.Params("id"), GetUserID(c)); err != nil {
		return respondDomainError(c, err)
	}
	return h.GetAudit(c)
}

// CloseAudit cierra la auditoría analizada sin tocar saldos.
func (h *CheckHandler) CloseAudit(c *fiber.Ctx) error {
	if err := h.audit.Close(c.Context(), c.Params("id"), GetUserID(c)); err != nil {
		return respondDomainError(c, err)
	}
	return h.GetAudit(c)
}

// SubmitReconciliation godoc
// @Summary      Enviar auto-reporte de inventario
// @Description  Crea el conteo y lo analiza en la misma transacción; la varianza queda visible de inmediato.
// @Tags         reconciliations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SubmitReconciliationRequest  true  "contractor_id, period_type (weekly|monthly|ad_hoc), period_start, period_end, lines"
// @Success      201   {object}  dto.CheckWithLinesResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/reconciliations [post]
func (h *CheckHandler) SubmitReconciliation(c *fiber.Ctx) error {
	var in dto.SubmitReconciliationRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if GetRole(c) == entity.RoleContractor {
		in.ContractorID = GetContractorID(c)
	}
	periodStart, err := parseDate(in.PeriodStart)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "period_start debe ser YYYY-MM-DD"})
	}
	periodEnd, err := parseDate(in.PeriodEnd)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "period_end debe ser YYYY-MM-DD"})
	}
	checkDate, err := parseDate(in.CheckDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "check_date debe ser YYYY-MM-DD"})
	}
	input := checks.SubmitInput{
		ContractorID: in.ContractorID,
		PeriodType:   in.PeriodType,
		PeriodStart:  periodStart,
		PeriodEnd:    periodEnd,
		CheckDate:    checkDate,
		ReportedBy:   GetUserID(c),
		Notes:        in.Notes,
	}
	for _, l := range in.Lines {
		input.Lines = append(input.Lines, checks.ReconciliationLineInput{
			MaterialID:    l.MaterialID,
			PhysicalCount: l.PhysicalCount,
			Notes:         l.Notes,
		})
	}
	check, lines, err := h.reconciliation.Submit(c.Context(), input)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromCheckWithLines(check, lines))
}

// ReviewReconciliation godoc
// @Summary      Revisar auto-reporte
// @Description  accept=true resuelve las anomalías y, con adjust_inventory, corrige los saldos a lo contado; accept=false lo disputa y no toca saldos.
// @Tags         reconciliations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del conteo"
// @Param        body  body  dto.ReviewRequest  true  "accept, adjust_inventory, notes"
// @Success      200   {object}  dto.CheckWithLinesResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/reconciliations/{id}/review [post]
func (h *CheckHandler) ReviewReconciliation(c *fiber.Ctx) error {
	var in dto.ReviewRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	err := h.reconciliation.Review(c.Context(), c.Params("id"), checks.ReviewInput{
		Accept:          in.Accept,
		AdjustInventory: in.AdjustInventory,
		ReviewedBy:      GetUserID(c),
		Notes:           in.Notes,
	})
	if err != nil {
		return respondDomainError(c, err)
	}
	return h.getCheck(c, c.Params("id"))
}

// ListChecks devuelve conteos filtrados por clase y estado
// (?kind=AUDIT&status=ANALYZED).
func (h *CheckHandler) ListChecks(c *fiber.Ctx) error {
	list, err := h.checkRepo.List(c.Query("kind"), c.Query("status"))
	if err != nil {
		return respondDomainError(c, err)
	}
	out := make([]dto.CheckResponse, 0, len(list))
	for i := range list {
		out = append(out, dto.FromCheck(&list[i]))
	}
	return c.JSON(out)
}

// ListByContractor devuelve los conteos de un contratista.
func (h *CheckHandler) ListByContractor(c *fiber.Ctx) error {
	contractorID := c.Params("id")
	if err := requireOwnContractor(c, contractorID); err != nil {
		return err
	}
	list, err := h.checkRepo.ListByContractor(contractorID)
	if err != nil {
		return respondDomainError(c, err)
	}
	out := make([]dto.CheckResponse, 0, len(list))
	for i := range list {
		out = append(out, dto.FromCheck(&list[i]))
	}
	return c.JSON(out)
}

func (h *CheckHandler) getCheck(c *fiber.Ctx, id string) error {
	check, err := h.checkRepo.GetByID(id)
	if err != nil {
		return respondDomainError(c, err)
	}
	lines, err := h.checkRepo.ListLines(id)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(dto.FromCheckWithLines(check, lines))
}
