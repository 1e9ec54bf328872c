// Package memrepo implementa los puertos de repositorio en memoria para tests
// de casos de uso. El Runner simula el TxRunner sin transaccionalidad real:
// los tests verifican lógica de negocio, no el motor de Postgres.
package memrepo

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	appinv "github.com/jhoicas/ObraStock-api/internal/application/inventory"
	"github.com/jhoicas/ObraStock-api/internal/domain"
	"github.com/jhoicas/ObraStock-api/internal/domain/entity"
)

type balanceKey struct{ owner, item string }

// Store estado compartido de todos los repos en memoria.
type Store struct {
	Materials     map[string]*entity.Material
	Warehouses    map[string]*entity.Warehouse
	Contractors   map[string]*entity.Contractor
	Suppliers     map[string]*entity.Supplier
	FinishedGoods map[string]*entity.FinishedGood
	BOMs          map[string][]entity.BOMItem
	Conversions   []*entity.UnitConversion
	Thresholds    []*entity.VarianceThreshold

	WarehouseStock map[balanceKey]*entity.WarehouseInventory
	ContractorStk  map[balanceKey]*entity.ContractorInventory
	FinishedStock  map[balanceKey]*entity.FinishedGoodsInventory

	Issuances   []*entity.MaterialIssuance
	Consumos    []*entity.Consumption
	Productions []*entity.ProductionRecord
	Rejections  map[string]*entity.MaterialRejection
	Transfers   map[string]*entity.StockTransfer
	POs         map[string]*entity.PurchaseOrder
	GRNs        []*entity.GoodsReceipt
	FGRs        []*entity.FinishedGoodsReceipt

	Checks      map[string]*entity.InventoryCheck
	CheckLines  map[string]*entity.InventoryCheckLine
	Anomalies   map[string]*entity.Anomaly
	Adjustments []*entity.InventoryAdjustment

	Users map[string]*entity.User

	Seqs map[string]int
}

// NewStore estado vacío listo para sembrar.
func NewStore() *Store {
	return &Store{
		Materials:      make(map[string]*entity.Material),
		Warehouses:     make(map[string]*entity.Warehouse),
		Contractors:    make(map[string]*entity.Contractor),
		Suppliers:      make(map[string]*entity.Supplier),
		FinishedGoods:  make(map[string]*entity.FinishedGood),
		BOMs:           make(map[string][]entity.BOMItem),
		WarehouseStock: make(map[balanceKey]*entity.WarehouseInventory),
		ContractorStk:  make(map[balanceKey]*entity.ContractorInventory),
		FinishedStock:  make(map[balanceKey]*entity.FinishedGoodsInventory),
		Rejections:     make(map[string]*entity.MaterialRejection),
		Transfers:      make(map[string]*entity.StockTransfer),
		POs:            make(map[string]*entity.PurchaseOrder),
		Checks:         make(map[string]*entity.InventoryCheck),
		CheckLines:     make(map[string]*entity.InventoryCheckLine),
		Anomalies:      make(map[string]*entity.Anomaly),
		Users:          make(map[string]*entity.User),
		Seqs:           make(map[string]int),
	}
}

// ── Siembra ──────────────────────────────────────────────────────────────────

// SeedWarehouseStock fija el saldo de bodega en la unidad dada.
func (s *Store) SeedWarehouseStock(warehouseID, materialID, qty, unit string) {
	s.WarehouseStock[balanceKey{warehouseID, materialID}] = &entity.WarehouseInventory{
		WarehouseID: warehouseID, MaterialID: materialID,
		CurrentQuantity: mustDec(qty), UnitOfMeasure: unit,
	}
}

// SeedContractorStock fija el saldo de contratista en unidad canónica.
func (s *Store) SeedContractorStock(contractorID, materialID, qty string) {
	s.ContractorStk[balanceKey{contractorID, materialID}] = &entity.ContractorInventory{
		ContractorID: contractorID, MaterialID: materialID, Quantity: mustDec(qty),
	}
}

func mustDec(v string) decimal.Decimal {
	d, err := decimal.NewFromString(v)
	if err != nil {
		panic(err)
	}
	return d
}

// ── Runner ───────────────────────────────────────────────────────────────────

// Runner TxRunner en memoria: pasa los repos del mismo Store, sin rollback.
type Runner struct{ S *Store }

func (r *Runner) Run(_ context.Context, fn func(appinv.LedgerRepos) error) error {
	return fn(appinv.LedgerRepos{
		WarehouseStock:        &WarehouseStockRepo{r.S},
		ContractorStock:       &ContractorStockRepo{r.S},
		FinishedStock:         &FinishedStockRepo{r.S},
		Issuances:             &IssuanceRepo{r.S},
		Consumptions:          &ConsumptionRepo{r.S},
		Productions:           &ProductionRepo{r.S},
		Rejections:            &RejectionRepo{r.S},
		Transfers:             &TransferRepo{r.S},
		PurchaseOrders:        &PORepo{r.S},
		GoodsReceipts:         &GRNRepo{r.S},
		FinishedGoodsReceipts: &FGRRepo{r.S},
		Checks:                &CheckRepo{r.S},
		Anomalies:             &AnomalyRepo{r.S},
		Adjustments:           &AdjustmentRepo{r.S},
		Sequences:             &SequenceRepo{r.S},
	})
}

// ── Catálogo ─────────────────────────────────────────────────────────────────

type MaterialRepo struct{ S *Store }

func (r *MaterialRepo) Create(m *entity.Material) error { r.S.Materials[m.ID] = m; return nil }
func (r *MaterialRepo) GetByID(id string) (*entity.Material, error) {
	if m, ok := r.S.Materials[id]; ok {
		return m, nil
	}
	return nil, domain.ErrNotFound
}
func (r *MaterialRepo) GetByCode(code string) (*entity.Material, error) {
	for _, m := range r.S.Materials {
		if m.Code == code {
			return m, nil
		}
	}
	return nil, domain.ErrNotFound
}
func (r *MaterialRepo) List() ([]entity.Material, error) {
	var out []entity.Material
	for _, m := range r.S.Materials {
		out = append(out, *m)
	}
	return out, nil
}

type WarehouseRepo struct{ S *Store }

func (r *WarehouseRepo) Create(w *entity.Warehouse) error { r.S.Warehouses[w.ID] = w; return nil }
func (r *WarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	if w, ok := r.S.Warehouses[id]; ok {
		return w, nil
	}
	return nil, domain.ErrNotFound
}
func (r *WarehouseRepo) List() ([]entity.Warehouse, error) { return nil, nil }

type ContractorRepo struct{ S *Store }

func (r *ContractorRepo) Create(c *entity.Contractor) error { r.S.Contractors[c.ID] = c; return nil }
func (r *ContractorRepo) GetByID(id string) (*entity.Contractor, error) {
	if c, ok := r.S.Contractors[id]; ok {
		return c, nil
	}
	return nil, domain.ErrNotFound
}
func (r *ContractorRepo) List() ([]entity.Contractor, error) { return nil, nil }

type SupplierRepo struct{ S *Store }

func (r *SupplierRepo) Create(p *entity.Supplier) error { r.S.Suppliers[p.ID] = p; return nil }
func (r *SupplierRepo) GetByID(id string) (*entity.Supplier, error) {
	if p, ok := r.S.Suppliers[id]; ok {
		return p, nil
	}
	return nil, domain.ErrNotFound
}
func (r *SupplierRepo) List() ([]entity.Supplier, error) { return nil, nil }

type FinishedGoodRepo struct{ S *Store }

func (r *FinishedGoodRepo) Create(fg *entity.FinishedGood) error {
	r.S.FinishedGoods[fg.ID] = fg
	return nil
}
func (r *FinishedGoodRepo) GetByID(id string) (*entity.FinishedGood, error) {
	if fg, ok := r.S.FinishedGoods[id]; ok {
		return fg, nil
	}
	return nil, domain.ErrNotFound
}
func (r *FinishedGoodRepo) List() ([]entity.FinishedGood, error) { return nil, nil }
func (r *FinishedGoodRepo) ListBOM(finishedGoodID string) ([]entity.BOMItem, error) {
	return r.S.BOMs[finishedGoodID], nil
}

type UserRepo struct{ S *Store }

func (r *UserRepo) Create(u *entity.User) error { r.S.Users[u.ID] = u; return nil }
func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	if u, ok := r.S.Users[id]; ok {
		return u, nil
	}
	return nil, domain.ErrNotFound
}
func (r *UserRepo) FindByEmail(email string) (*entity.User, error) {
	for _, u := range r.S.Users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrNotFound
}

type ConversionRepo struct{ S *Store }

func (r *ConversionRepo) Create(c *entity.UnitConversion) error {
	r.S.Conversions = append(r.S.Conversions, c)
	return nil
}
func (r *ConversionRepo) Find(materialID, fromUnit, toUnit string) (*entity.UnitConversion, error) {
	for _, c := range r.S.Conversions {
		if c.IsActive && c.MaterialID == materialID &&
			strings.EqualFold(c.FromUnit, fromUnit) && strings.EqualFold(c.ToUnit, toUnit) {
			return c, nil
		}
	}
	return nil, domain.ErrNotFound
}
func (r *ConversionRepo) ListByMaterial(materialID string) ([]entity.UnitConversion, error) {
	var out []entity.UnitConversion
	for _, c := range r.S.Conversions {
		if c.MaterialID == materialID {
			out = append(out, *c)
		}
	}
	return out, nil
}

type ThresholdRepo struct{ S *Store }

func (r *ThresholdRepo) Create(t *entity.VarianceThreshold) error {
	r.S.Thresholds = append(r.S.Thresholds, t)
	return nil
}
func (r *ThresholdRepo) Update(t *entity.VarianceThreshold) error {
	for i, row := range r.S.Thresholds {
		if row.ID == t.ID {
			r.S.Thresholds[i] = t
			return nil
		}
	}
	return domain.ErrNotFound
}
func (r *ThresholdRepo) FindActive(contractorID, materialID string) (*entity.VarianceThreshold, error) {
	for _, t := range r.S.Thresholds {
		if t.IsActive && t.ContractorID == contractorID && t.MaterialID == materialID {
			return t, nil
		}
	}
	return nil, domain.ErrNotFound
}
func (r *ThresholdRepo) List() ([]entity.VarianceThreshold, error) {
	var out []entity.VarianceThreshold
	for _, t := range r.S.Thresholds {
		out = append(out, *t)
	}
	return out, nil
}

// ── Saldos ───────────────────────────────────────────────────────────────────

type WarehouseStockRepo struct{ S *Store }

func (r *WarehouseStockRepo) Get(warehouseID, materialID string) (*entity.WarehouseInventory, error) {
	if s, ok := r.S.WarehouseStock[balanceKey{warehouseID, materialID}]; ok {
		return s, nil
	}
	return nil, domain.ErrNotFound
}
func (r *WarehouseStockRepo) GetForUpdate(warehouseID, materialID string) (*entity.WarehouseInventory, error) {
	return r.Get(warehouseID, materialID)
}
func (r *WarehouseStockRepo) Upsert(inv *entity.WarehouseInventory) error {
	r.S.WarehouseStock[balanceKey{inv.WarehouseID, inv.MaterialID}] = inv
	return nil
}
func (r *WarehouseStockRepo) ListByWarehouse(warehouseID string) ([]entity.WarehouseInventory, error) {
	var out []entity.WarehouseInventory
	for _, s := range r.S.WarehouseStock {
		if s.WarehouseID == warehouseID {
			out = append(out, *s)
		}
	}
	return out, nil
}
func (r *WarehouseStockRepo) ListBelowReorderPoint() ([]entity.WarehouseInventory, error) {
	var out []entity.WarehouseInventory
	for _, s := range r.S.WarehouseStock {
		if s.IsBelowReorderPoint() {
			out = append(out, *s)
		}
	}
	return out, nil
}

type ContractorStockRepo struct{ S *Store }

func (r *ContractorStockRepo) Get(contractorID, materialID string) (*entity.ContractorInventory, error) {
	if s, ok := r.S.ContractorStk[balanceKey{contractorID, materialID}]; ok {
		return s, nil
	}
	return nil, domain.ErrNotFound
}
func (r *ContractorStockRepo) GetForUpdate(contractorID, materialID string) (*entity.ContractorInventory, error) {
	return r.Get(contractorID, materialID)
}
func (r *ContractorStockRepo) Upsert(inv *entity.ContractorInventory) error {
	r.S.ContractorStk[balanceKey{inv.ContractorID, inv.MaterialID}] = inv
	return nil
}
func (r *ContractorStockRepo) ListByContractor(contractorID string) ([]entity.ContractorInventory, error) {
	var out []entity.ContractorInventory
	for _, s := range r.S.ContractorStk {
		if s.ContractorID == contractorID {
			out = append(out, *s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MaterialID < out[j].MaterialID })
	return out, nil
}
func (r *ContractorStockRepo) ListPositiveByContractor(contractorID string) ([]entity.ContractorInventory, error) {
	all, _ := r.ListByContractor(contractorID)
	var out []entity.ContractorInventory
	for _, s := range all {
		if s.Quantity.IsPositive() {
			out = append(out, s)
		}
	}
	return out, nil
}

type FinishedStockRepo struct{ S *Store }

func (r *FinishedStockRepo) Get(warehouseID, finishedGoodID string) (*entity.FinishedGoodsInventory, error) {
	if s, ok := r.S.FinishedStock[balanceKey{warehouseID, finishedGoodID}]; ok {
		return s, nil
	}
	return nil, domain.ErrNotFound
}
func (r *FinishedStockRepo) GetForUpdate(warehouseID, finishedGoodID string) (*entity.FinishedGoodsInventory, error) {
	return r.Get(warehouseID, finishedGoodID)
}
func (r *FinishedStockRepo) Upsert(inv *entity.FinishedGoodsInventory) error {
	r.S.FinishedStock[balanceKey{inv.WarehouseID, inv.FinishedGoodID}] = inv
	return nil
}
func (r *FinishedStockRepo) ListByWarehouse(warehouseID string) ([]entity.FinishedGoodsInventory, error) {
	var out []entity.FinishedGoodsInventory
	for _, s := range r.S.FinishedStock {
		if s.WarehouseID == warehouseID {
			out = append(out, *s)
		}
	}
	return out, nil
}

// ── Movimientos ──────────────────────────────────────────────────────────────

func inWindow(t, from, to time.Time) bool {
	return !t.Before(from) && t.Before(to)
}

type IssuanceRepo struct{ S *Store }

func (r *IssuanceRepo) Create(i *entity.MaterialIssuance) error {
	r.S.Issuances = append(r.S.Issuances, i)
	return nil
}
func (r *IssuanceRepo) GetByID(id string) (*entity.MaterialIssuance, error) {
	for _, i := range r.S.Issuances {
		if i.ID == id {
			return i, nil
		}
	}
	return nil, domain.ErrNotFound
}
func (r *IssuanceRepo) ListByContractor(contractorID string) ([]entity.MaterialIssuance, error) {
	var out []entity.MaterialIssuance
	for _, i := range r.S.Issuances {
		if i.ContractorID == contractorID {
			out = append(out, *i)
		}
	}
	return out, nil
}
func (r *IssuanceRepo) SumBaseQuantityInWindow(contractorID, materialID string, from, to time.Time) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, i := range r.S.Issuances {
		if i.ContractorID == contractorID && i.MaterialID == materialID && inWindow(i.IssuedDate, from, to) {
			sum = sum.Add(i.QuantityInBaseUnit)
		}
	}
	return sum, nil
}

type ConsumptionRepo struct{ S *Store }

func (r *ConsumptionRepo) Create(c *entity.Consumption) error {
	r.S.Consumos = append(r.S.Consumos, c)
	return nil
}
func (r *ConsumptionRepo) ListByContractor(contractorID string) ([]entity.Consumption, error) {
	var out []entity.Consumption
	for _, c := range r.S.Consumos {
		if c.ContractorID == contractorID {
			out = append(out, *c)
		}
	}
	return out, nil
}
func (r *ConsumptionRepo) SumQuantityInWindow(contractorID, materialID string, from, to time.Time) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, c := range r.S.Consumos {
		if c.ContractorID == contractorID && c.MaterialID == materialID && inWindow(c.ConsumedAt, from, to) {
			sum = sum.Add(c.Quantity)
		}
	}
	return sum, nil
}

type ProductionRepo struct{ S *Store }

func (r *ProductionRepo) Create(p *entity.ProductionRecord) error {
	r.S.Productions = append(r.S.Productions, p)
	return nil
}
func (r *ProductionRepo) GetByID(id string) (*entity.ProductionRecord, error) {
	for _, p := range r.S.Productions {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, domain.ErrNotFound
}
func (r *ProductionRepo) ListByContractor(contractorID string) ([]entity.ProductionRecord, error) {
	return nil, nil
}

type RejectionRepo struct{ S *Store }

func (r *RejectionRepo) Create(m *entity.MaterialRejection) error {
	r.S.Rejections[m.ID] = m
	return nil
}
func (r *RejectionRepo) GetByID(id string) (*entity.MaterialRejection, error) {
	if m, ok := r.S.Rejections[id]; ok {
		return m, nil
	}
	return nil, domain.ErrNotFound
}
func (r *RejectionRepo) GetByIDForUpdate(id string) (*entity.MaterialRejection, error) {
	return r.GetByID(id)
}
func (r *RejectionRepo) Update(m *entity.MaterialRejection) error {
	r.S.Rejections[m.ID] = m
	return nil
}
func (r *RejectionRepo) ListByStatus(status string) ([]entity.MaterialRejection, error) {
	var out []entity.MaterialRejection
	for _, m := range r.S.Rejections {
		if m.Status == status {
			out = append(out, *m)
		}
	}
	return out, nil
}
func (r *RejectionRepo) SumReceivedInWindow(contractorID, materialID string, from, to time.Time) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, m := range r.S.Rejections {
		if m.Status != entity.RejectionStatusReceived || m.ReceivedAt == nil {
			continue
		}
		if m.ContractorID == contractorID && m.MaterialID == materialID && inWindow(*m.ReceivedAt, from, to) {
			sum = sum.Add(m.QuantityInBaseUnit)
		}
	}
	return sum, nil
}

type SequenceRepo struct{ S *Store }

func (r *SequenceRepo) Next(prefix string, year int) (int, error) {
	k := prefix + "-" + strconv.Itoa(year)
	r.S.Seqs[k]++
	return r.S.Seqs[k], nil
}

// ── Transferencias y compras ─────────────────────────────────────────────────

type TransferRepo struct{ S *Store }

func (r *TransferRepo) Create(t *entity.StockTransfer) error { r.S.Transfers[t.ID] = t; return nil }
func (r *TransferRepo) GetByID(id string) (*entity.StockTransfer, error) {
	if t, ok := r.S.Transfers[id]; ok {
		return t, nil
	}
	return nil, domain.ErrNotFound
}
func (r *TransferRepo) GetByIDForUpdate(id string) (*entity.StockTransfer, error) {
	return r.GetByID(id)
}
func (r *TransferRepo) UpdateHeader(t *entity.StockTransfer) error {
	if _, ok := r.S.Transfers[t.ID]; !ok {
		return domain.ErrNotFound
	}
	r.S.Transfers[t.ID] = t
	return nil
}
func (r *TransferRepo) List() ([]entity.StockTransfer, error) { return nil, nil }

type PORepo struct{ S *Store }

func (r *PORepo) Create(po *entity.PurchaseOrder) error { r.S.POs[po.ID] = po; return nil }
func (r *PORepo) GetByID(id string) (*entity.PurchaseOrder, error) {
	if po, ok := r.S.POs[id]; ok {
		return po, nil
	}
	return nil, domain.ErrNotFound
}
func (r *PORepo) GetByIDForUpdate(id string) (*entity.PurchaseOrder, error) { return r.GetByID(id) }
func (r *PORepo) UpdateLine(line *entity.PurchaseOrderLine) error {
	po, ok := r.S.POs[line.PurchaseOrderID]
	if !ok {
		return domain.ErrNotFound
	}
	for i := range po.Lines {
		if po.Lines[i].ID == line.ID {
			po.Lines[i] = *line
			return nil
		}
	}
	return domain.ErrNotFound
}
func (r *PORepo) UpdateStatus(id, status string) error {
	po, ok := r.S.POs[id]
	if !ok {
		return domain.ErrNotFound
	}
	po.Status = status
	return nil
}
func (r *PORepo) List() ([]entity.PurchaseOrder, error) { return nil, nil }

type GRNRepo struct{ S *Store }

func (r *GRNRepo) Create(g *entity.GoodsReceipt) error { r.S.GRNs = append(r.S.GRNs, g); return nil }
func (r *GRNRepo) GetByID(id string) (*entity.GoodsReceipt, error) {
	for _, g := range r.S.GRNs {
		if g.ID == id {
			return g, nil
		}
	}
	return nil, domain.ErrNotFound
}
func (r *GRNRepo) ListByPurchaseOrder(poID string) ([]entity.GoodsReceipt, error) {
	var out []entity.GoodsReceipt
	for _, g := range r.S.GRNs {
		if g.PurchaseOrderID == poID {
			out = append(out, *g)
		}
	}
	return out, nil
}

type FGRRepo struct{ S *Store }

func (r *FGRRepo) Create(f *entity.FinishedGoodsReceipt) error {
	r.S.FGRs = append(r.S.FGRs, f)
	return nil
}
func (r *FGRRepo) GetByID(id string) (*entity.FinishedGoodsReceipt, error) {
	for _, f := range r.S.FGRs {
		if f.ID == id {
			return f, nil
		}
	}
	return nil, domain.ErrNotFound
}
func (r *FGRRepo) List() ([]entity.FinishedGoodsReceipt, error) { return nil, nil }

// ── Conteos y anomalías ──────────────────────────────────────────────────────

type CheckRepo struct{ S *Store }

func (r *CheckRepo) Create(c *entity.InventoryCheck) error { r.S.Checks[c.ID] = c; return nil }
func (r *CheckRepo) CreateLines(lines []entity.InventoryCheckLine) error {
	for i := range lines {
		l := lines[i]
		r.S.CheckLines[l.ID] = &l
	}
	return nil
}
func (r *CheckRepo) GetByID(id string) (*entity.InventoryCheck, error) {
	if c, ok := r.S.Checks[id]; ok {
		return c, nil
	}
	return nil, domain.ErrNotFound
}
func (r *CheckRepo) GetByIDForUpdate(id string) (*entity.InventoryCheck, error) { return r.GetByID(id) }
func (r *CheckRepo) UpdateHeader(c *entity.InventoryCheck) error {
	r.S.Checks[c.ID] = c
	return nil
}
func (r *CheckRepo) UpdateLine(l *entity.InventoryCheckLine) error {
	r.S.CheckLines[l.ID] = l
	return nil
}
func (r *CheckRepo) ListLines(checkID string) ([]entity.InventoryCheckLine, error) {
	var out []entity.InventoryCheckLine
	for _, l := range r.S.CheckLines {
		if l.CheckID == checkID {
			out = append(out, *l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MaterialID < out[j].MaterialID })
	return out, nil
}
func (r *CheckRepo) FindOpenByContractor(contractorID, kind string) (*entity.InventoryCheck, error) {
	for _, c := range r.S.Checks {
		if c.ContractorID == contractorID && c.Kind == kind &&
			c.Status != entity.CheckStatusClosed && c.Status != entity.CheckStatusAccepted &&
			c.Status != entity.CheckStatusDisputed {
			return c, nil
		}
	}
	return nil, domain.ErrNotFound
}
func (r *CheckRepo) ListByContractor(contractorID string) ([]entity.InventoryCheck, error) {
	var out []entity.InventoryCheck
	for _, c := range r.S.Checks {
		if c.ContractorID == contractorID {
			out = append(out, *c)
		}
	}
	return out, nil
}
func (r *CheckRepo) List(kind, status string) ([]entity.InventoryCheck, error) {
	var out []entity.InventoryCheck
	for _, c := range r.S.Checks {
		if (kind == "" || c.Kind == kind) && (status == "" || c.Status == status) {
			out = append(out, *c)
		}
	}
	return out, nil
}
func (r *CheckRepo) LastResolvedCount(contractorID, materialID string, before time.Time) (*entity.InventoryCheckLine, *entity.InventoryCheck, error) {
	var bestLine *entity.InventoryCheckLine
	var bestCheck *entity.InventoryCheck
	for _, l := range r.S.CheckLines {
		if l.MaterialID != materialID {
			continue
		}
		c, ok := r.S.Checks[l.CheckID]
		if !ok || c.ContractorID != contractorID || c.ResolvedAt == nil {
			continue
		}
		if !c.CheckDate.Before(before) {
			continue
		}
		if bestCheck == nil || c.CheckDate.After(bestCheck.CheckDate) {
			bestLine, bestCheck = l, c
		}
	}
	if bestLine == nil {
		return nil, nil, domain.ErrNotFound
	}
	return bestLine, bestCheck, nil
}

type AnomalyRepo struct{ S *Store }

func (r *AnomalyRepo) Create(a *entity.Anomaly) error { r.S.Anomalies[a.ID] = a; return nil }
func (r *AnomalyRepo) GetByID(id string) (*entity.Anomaly, error) {
	if a, ok := r.S.Anomalies[id]; ok {
		return a, nil
	}
	return nil, domain.ErrNotFound
}
func (r *AnomalyRepo) Update(a *entity.Anomaly) error { r.S.Anomalies[a.ID] = a; return nil }
func (r *AnomalyRepo) List(status string) ([]entity.Anomaly, error) {
	var out []entity.Anomaly
	for _, a := range r.S.Anomalies {
		switch status {
		case "resolved":
			if !a.Resolved {
				continue
			}
		case "open":
			if a.Resolved {
				continue
			}
		}
		out = append(out, *a)
	}
	return out, nil
}
func (r *AnomalyRepo) ListByCheck(checkID string) ([]entity.Anomaly, error) {
	var out []entity.Anomaly
	for _, a := range r.S.Anomalies {
		if a.CheckID == checkID {
			out = append(out, *a)
		}
	}
	return out, nil
}

type AdjustmentRepo struct{ S *Store }

func (r *AdjustmentRepo) Create(a *entity.InventoryAdjustment) error {
	r.S.Adjustments = append(r.S.Adjustments, a)
	return nil
}
func (r *AdjustmentRepo) ListByCheck(checkLineID string) ([]entity.InventoryAdjustment, error) {
	var out []entity.InventoryAdjustment
	for _, a := range r.S.Adjustments {
		if a.CheckLineID == checkLineID {
			out = append(out, *a)
		}
	}
	return out, nil
}
