package inventory

import (
	"fmt"

	"github.com/jhoicas/ObraStock-api/internal/domain/repository"
)

// Prefijos de numeración de documentos de negocio.
const (
	PrefixIssuance        = "ISS"
	PrefixRejection       = "REJ"
	PrefixTransfer        = "TRF"
	PrefixGoodsReceipt    = "GRN"
	PrefixFinishedReceipt = "FGR"
	PrefixPurchaseOrder   = "PO"
	PrefixAudit           = "AUD"
	PrefixReconciliation  = "REC"
	PrefixAdjustment      = "ADJ"
)

// FormatDocNumber ISS-2026-0001 y similares.
func FormatDocNumber(prefix string, year, seq int) string {
	return fmt.Sprintf("%s-%d-%04d", prefix, year, seq)
}

// NextDocNumber pide el consecutivo del año a la secuencia y lo formatea.
func NextDocNumber(seqs repository.SequenceRepository, prefix string, year int) (string, error) {
	n, err := seqs.Next(prefix, year)
	if err != nil {
		return "", err
	}
	return FormatDocNumber(prefix, year, n), nil
}
