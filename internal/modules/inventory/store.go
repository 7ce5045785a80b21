package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/viniciusalbino/autoAtendeAI/internal/ai"
)

// Repository is the read side of the inventory store.
type Repository interface {
	Search(ctx context.Context, dealershipID int64, f ai.FilterSpec, limit int) ([]Vehicle, error)
	FindByModel(ctx context.Context, dealershipID int64, model string) (*Vehicle, error)
}

const vehicleColumns = `id, dealership_id, brand, model, version, model_year, price, color, mileage,
	transmission, fuel, engine, options, photos, sold`

// Store reads vehicles from PostgreSQL. Results are ordered by ascending id.
type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) Search(ctx context.Context, dealershipID int64, f ai.FilterSpec, limit int) ([]Vehicle, error) {
	query, args := buildSearchQuery(dealershipID, f, limit)
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("search vehicles: %w", err)
	}
	defer rows.Close()

	var out []Vehicle
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (s *Store) FindByModel(ctx context.Context, dealershipID int64, model string) (*Vehicle, error) {
	row := s.db.QueryRow(ctx, `
		SELECT `+vehicleColumns+`
		FROM vehicles
		WHERE dealership_id = $1 AND sold = FALSE AND model ILIKE $2
		ORDER BY id
		LIMIT 1`, dealershipID, "%"+escapeLike(model)+"%")

	v, err := scanVehicle(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// Insert is used by seeding and tests; inventory management itself lives elsewhere.
func (s *Store) Insert(ctx context.Context, v *Vehicle) error {
	return s.db.QueryRow(ctx, `
		INSERT INTO vehicles (
			dealership_id, brand, model, version, model_year, price, color, mileage,
			transmission, fuel, engine, options, photos, sold
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id`,
		v.DealershipID, v.Brand, v.Model, v.Version, v.Year, v.Price, v.Color, v.Mileage,
		v.Transmission, v.Fuel, v.Engine, JoinList(v.Options), JoinList(v.Photos), v.Sold,
	).Scan(&v.ID)
}

// buildSearchQuery renders f as a parameterised WHERE clause.
func buildSearchQuery(dealershipID int64, f ai.FilterSpec, limit int) (string, []any) {
	args := []any{dealershipID}
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	conds := []string{"dealership_id = $1", "sold = FALSE"}
	if f.Brand != nil {
		if c := tokenCondition("brand", *f.Brand, arg); c != "" {
			conds = append(conds, c)
		}
	}
	if f.Model != nil {
		if c := tokenCondition("model", *f.Model, arg); c != "" {
			conds = append(conds, c)
		}
	}
	if f.Color != nil {
		conds = append(conds, "color ILIKE "+arg("%"+escapeLike(strings.TrimSpace(*f.Color))+"%"))
	}
	if f.YearMin != nil {
		conds = append(conds, "model_year >= "+arg(*f.YearMin))
	}
	if f.YearMax != nil {
		conds = append(conds, "model_year <= "+arg(*f.YearMax))
	}
	if f.PriceMin != nil {
		conds = append(conds, "price >= "+arg(*f.PriceMin))
	}
	if f.PriceMax != nil {
		conds = append(conds, "price <= "+arg(*f.PriceMax))
	}
	if f.MileageMax != nil {
		conds = append(conds, "mileage <= "+arg(*f.MileageMax))
	}
	for _, opt := range f.Options {
		conds = append(conds, "options ILIKE "+arg("%"+escapeLike(opt)+"%"))
	}

	query := "SELECT " + vehicleColumns + "\n\t\tFROM vehicles\n\t\tWHERE " +
		strings.Join(conds, " AND ") +
		"\n\t\tORDER BY id LIMIT " + arg(limit)
	return query, args
}

// tokenCondition matches the trimmed column against term as a whole value or a
// space-bounded token, like MatchesTerm.
func tokenCondition(column, term string, arg func(any) string) string {
	t := strings.ToLower(strings.TrimSpace(term))
	if t == "" {
		return ""
	}
	column = "btrim(" + column + ")"
	p := arg(escapeLike(t))
	return fmt.Sprintf("(%[1]s ILIKE %[2]s OR %[1]s ILIKE (%[2]s || ' %%') OR %[1]s ILIKE ('%% ' || %[2]s) OR %[1]s ILIKE ('%% ' || %[2]s || ' %%'))", column, p)
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func scanVehicle(row pgx.Row) (Vehicle, error) {
	var (
		v                     Vehicle
		version, transmission *string
		fuel, engine          *string
		options, photos       *string
	)
	err := row.Scan(
		&v.ID, &v.DealershipID, &v.Brand, &v.Model, &version, &v.Year, &v.Price, &v.Color, &v.Mileage,
		&transmission, &fuel, &engine, &options, &photos, &v.Sold,
	)
	if err != nil {
		return Vehicle{}, err
	}
	v.Version = deref(version)
	v.Transmission = deref(transmission)
	v.Fuel = deref(fuel)
	v.Engine = deref(engine)
	v.Options = SplitList(deref(options))
	v.Photos = SplitList(deref(photos))
	return v, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
