package inventory

import "sort"

// Clases de fila de saldo, en el orden global de adquisición de locks.
const (
	BalanceKindWarehouse    = 1 // inventario de bodega (material)
	BalanceKindContractor   = 2 // inventario de contratista
	BalanceKindFinishedGood = 3 // producto terminado en bodega
)

// BalanceKey identifica una fila de saldo para efectos de orden de bloqueo.
type BalanceKey struct {
	Kind    int    // BalanceKind*
	OwnerID string // bodega o contratista
	ItemID  string // material o producto terminado
}

// Less define el orden global de adquisición de locks: clase de entidad,
// luego propietario, luego ítem. Toda operación que bloquee más de una fila
// de saldo DEBE adquirirlos en este orden; así dos operaciones que tocan las
// mismas dos filas nunca forman un ciclo de espera.
func (k BalanceKey) Less(other BalanceKey) bool {
	if k.Kind != other.Kind {
		return k.Kind < other.Kind
	}
	if k.OwnerID != other.OwnerID {
		return k.OwnerID < other.OwnerID
	}
	return k.ItemID < other.ItemID
}

// SortKeys ordena claves in-place según el orden global de bloqueo.
func SortKeys(keys []BalanceKey) {
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })
}
