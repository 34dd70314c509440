package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/logistic-api/internal/application/dto"
	"github.com/jhoicas/logistic-api/internal/application/search"
	"github.com/jhoicas/logistic-api/internal/domain"
	"github.com/jhoicas/logistic-api/internal/domain/entity"
	"github.com/jhoicas/logistic-api/internal/domain/repository"
)

// Operaciones registradas en métricas.
const (
	OpCreate = "create"
	OpUpdate = "update"
)

// StockUseCase lecturas y escrituras de stocks con sus posiciones.
// Toda escritura (stock + posiciones) corre en una única transacción vía TxRunner.
type StockUseCase struct {
	txRunner     TxRunner
	stockRepo    repository.StockRepository
	positionRepo repository.StockPositionRepository
	metrics      WriteMetrics
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(
	txRunner TxRunner,
	stockRepo repository.StockRepository,
	positionRepo repository.StockPositionRepository,
	metrics WriteMetrics,
) *StockUseCase {
	return &StockUseCase{
		txRunner:     txRunner,
		stockRepo:    stockRepo,
		positionRepo: positionRepo,
		metrics:      metrics,
	}
}

// CreateStockInput entrada de dominio para crear un stock.
type CreateStockInput struct {
	Address   string
	Positions []entity.PositionInput
}

// UpdateStockInput entrada de dominio para actualizar un stock.
// SyncPositions=false significa que "positions" no vino en el request: no se tocan.
type UpdateStockInput struct {
	Address       *string
	SyncPositions bool
	Positions     []entity.PositionInput
}

// CreateFromRequest adapta el request HTTP a Create y devuelve el stock renderizado sin filtro.
func (uc *StockUseCase) CreateFromRequest(ctx context.Context, in dto.CreateStockRequest) (*dto.StockResponse, error) {
	stock, err := uc.Create(ctx, CreateStockInput{
		Address:   in.Address,
		Positions: dto.ToPositionInputs(in.Positions),
	})
	if err != nil {
		return nil, err
	}
	return uc.render(ctx, stock, nil)
}

// UpdateFromRequest adapta el request HTTP a Update y devuelve el stock renderizado sin filtro.
func (uc *StockUseCase) UpdateFromRequest(ctx context.Context, id int64, in dto.UpdateStockRequest) (*dto.StockResponse, error) {
	input := UpdateStockInput{Address: in.Address}
	if in.Positions != nil {
		input.SyncPositions = true
		input.Positions = dto.ToPositionInputs(*in.Positions)
	}
	stock, err := uc.Update(ctx, id, input)
	if err != nil {
		return nil, err
	}
	return uc.render(ctx, stock, nil)
}

// Create resuelve los productos, crea el stock e inserta sus posiciones en bloque, todo en una transacción.
// Si un producto no se puede resolver no se persiste nada.
func (uc *StockUseCase) Create(ctx context.Context, in CreateStockInput) (stock *entity.Stock, err error) {
	started := time.Now()
	defer func() { uc.metrics.ObserveWrite(OpCreate, time.Since(started), err) }()

	var created int
	err = uc.txRunner.Run(ctx, func(
		stockRepo repository.StockRepository,
		positionRepo repository.StockPositionRepository,
		productRepo repository.ProductRepository,
	) error {
		rows, err := resolvePositions(ctx, productRepo, in.Positions)
		if err != nil {
			return err
		}
		now := time.Now()
		stock = &entity.Stock{Address: in.Address, CreatedAt: now, UpdatedAt: now}
		if err := stockRepo.Create(ctx, stock); err != nil {
			return err
		}
		for _, r := range rows {
			r.StockID = stock.ID
		}
		if len(rows) > 0 {
			if err := positionRepo.CreateBatch(ctx, rows); err != nil {
				return err
			}
		}
		created = len(rows)
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.metrics.AddPositions(OpCreate, created, 0, 0)
	zerolog.Ctx(ctx).Debug().Int64("stock_id", stock.ID).Int("positions", created).Msg("stock creado")
	return stock, nil
}

// Update aplica los campos simples y, si se enviaron posiciones, sincroniza en dos fases:
// (1) upsert de cada posición enviada, (2) borrado de las posiciones cuyo producto no se envió.
// Cualquier error deshace toda la actualización.
func (uc *StockUseCase) Update(ctx context.Context, id int64, in UpdateStockInput) (stock *entity.Stock, err error) {
	started := time.Now()
	defer func() { uc.metrics.ObserveWrite(OpUpdate, time.Since(started), err) }()

	var res syncResult
	err = uc.txRunner.Run(ctx, func(
		stockRepo repository.StockRepository,
		positionRepo repository.StockPositionRepository,
		productRepo repository.ProductRepository,
	) error {
		current, err := stockRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.ErrNotFound
		}
		if in.Address != nil {
			current.Address = *in.Address
		}
		current.UpdatedAt = time.Now()
		if err := stockRepo.Update(ctx, current); err != nil {
			return err
		}
		stock = current
		if !in.SyncPositions {
			return nil
		}
		res, err = syncPositions(ctx, productRepo, positionRepo, current.ID, in.Positions)
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.metrics.AddPositions(OpUpdate, res.created, res.updated, res.deleted)
	zerolog.Ctx(ctx).Debug().
		Int64("stock_id", stock.ID).
		Bool("sync", in.SyncPositions).
		Int("created", res.created).
		Int("updated", res.updated).
		Int("deleted", res.deleted).
		Msg("stock actualizado")
	return stock, nil
}

// Get obtiene un stock renderizado; filterProductID restringe positions y products.
func (uc *StockUseCase) Get(ctx context.Context, id int64, filterProductID *int64) (*dto.StockResponse, error) {
	stock, err := uc.stockRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if stock == nil {
		return nil, domain.ErrNotFound
	}
	return uc.render(ctx, stock, filterProductID)
}

// List lista stocks. Si ProductID viene, solo devuelve stocks con ese producto y lo usa
// como filtro de render en cada uno.
func (uc *StockUseCase) List(ctx context.Context, in dto.StockListRequest) (*dto.StockListResponse, error) {
	in.Page.DefaultPage()
	stocks, total, err := uc.stockRepo.List(ctx, repository.StockFilter{
		ProductID: in.ProductID,
		Terms:     search.Terms(in.Search),
		Ordering:  NormalizeOrdering(in.Ordering),
		Limit:     in.Page.Limit,
		Offset:    in.Page.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := []dto.StockResponse{}
	if len(stocks) > 0 {
		ids := make([]int64, 0, len(stocks))
		for _, s := range stocks {
			ids = append(ids, s.ID)
		}
		positions, err := uc.positionRepo.ListByStocks(ctx, ids, in.ProductID)
		if err != nil {
			return nil, err
		}
		items = RenderStocks(stocks, positions, in.ProductID)
	}
	return &dto.StockListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Page.Limit, Offset: in.Page.Offset, Total: total},
	}, nil
}

// Delete elimina un stock y, en cascada, sus posiciones.
func (uc *StockUseCase) Delete(ctx context.Context, id int64) error {
	return uc.stockRepo.Delete(ctx, id)
}

func (uc *StockUseCase) render(ctx context.Context, stock *entity.Stock, filterProductID *int64) (*dto.StockResponse, error) {
	positions, err := uc.positionRepo.ListByStocks(ctx, []int64{stock.ID}, filterProductID)
	if err != nil {
		return nil, err
	}
	out := RenderStocks([]*entity.Stock{stock}, positions, filterProductID)
	return &out[0], nil
}

// NormalizeOrdering devuelve el campo de orden si es válido ("id", "address", con "-" opcional);
// cualquier otro valor cae al orden por defecto "id".
func NormalizeOrdering(ordering string) string {
	o := strings.TrimSpace(ordering)
	switch strings.TrimPrefix(o, "-") {
	case repository.StockOrderID, repository.StockOrderAddress:
		return o
	}
	return repository.StockOrderID
}

type syncResult struct {
	created, updated, deleted int
}

// syncPositions fase 1: upsert por (stock, producto) acumulando los productos enviados;
// fase 2: borra las posiciones del stock cuyo producto no se envió (lista vacía = borrar todas).
func syncPositions(
	ctx context.Context,
	productRepo repository.ProductRepository,
	positionRepo repository.StockPositionRepository,
	stockID int64,
	inputs []entity.PositionInput,
) (syncResult, error) {
	var res syncResult
	keep := make([]int64, 0, len(inputs))
	seen := make(map[int64]bool, len(inputs))
	for _, in := range inputs {
		pos, err := toPosition(ctx, productRepo, in)
		if err != nil {
			return res, err
		}
		pos.StockID = stockID
		inserted, err := positionRepo.Upsert(ctx, pos)
		if err != nil {
			return res, err
		}
		if inserted {
			res.created++
		} else {
			res.updated++
		}
		if !seen[pos.ProductID] {
			seen[pos.ProductID] = true
			keep = append(keep, pos.ProductID)
		}
	}

	deleted, err := positionRepo.DeleteExcept(ctx, stockID, keep)
	if err != nil {
		return res, err
	}
	res.deleted = int(deleted)
	return res, nil
}

// resolvePositions resuelve todas las posiciones de una creación. Un producto repetido
// se pliega en una sola fila (gana la última entrada) conservando el orden de aparición.
func resolvePositions(ctx context.Context, productRepo repository.ProductRepository, inputs []entity.PositionInput) ([]*entity.StockPosition, error) {
	rows := make([]*entity.StockPosition, 0, len(inputs))
	index := make(map[int64]int, len(inputs))
	for _, in := range inputs {
		pos, err := toPosition(ctx, productRepo, in)
		if err != nil {
			return nil, err
		}
		if i, ok := index[pos.ProductID]; ok {
			rows[i] = pos
			continue
		}
		index[pos.ProductID] = len(rows)
		rows = append(rows, pos)
	}
	return rows, nil
}

func toPosition(ctx context.Context, productRepo repository.ProductRepository, in entity.PositionInput) (*entity.StockPosition, error) {
	product, err := ResolveProduct(ctx, productRepo, in.Product)
	if err != nil {
		return nil, err
	}
	price := in.Price.Round(2)
	if in.Quantity < 0 || in.Quantity > entity.MaxPositionQuantity ||
		price.IsNegative() || price.GreaterThanOrEqual(entity.MaxPositionPrice) {
		return nil, domain.ErrInvalidInput
	}
	return &entity.StockPosition{
		ProductID: product.ID,
		Quantity:  in.Quantity,
		Price:     price,
		Product:   product,
	}, nil
}
