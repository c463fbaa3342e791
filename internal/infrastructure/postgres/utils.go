package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/Hoteleria-api/internal/domain"
	"github.com/jhoicas/Hoteleria-api/internal/domain/entity"
	"github.com/jhoicas/Hoteleria-api/internal/domain/repository"
)

// Querier es lo común entre *pgxpool.Pool y pgx.Tx: los repositorios funcionan con ambos.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// DB conexión que además abre transacciones (*pgxpool.Pool, pgxmock).
type DB interface {
	Querier
	txBeginner
}

type scanner interface {
	Scan(dest ...any) error
}

// activeScope es el único predicado de "fila no eliminada"; toda lectura lo incluye.
func activeScope(alias string) string {
	return alias + ".deleted_at IS NULL"
}

// auditColumns columnas de auditoría con el nombre del creador expandido (requiere creatorJoin).
func auditColumns(alias string) string {
	return fmt.Sprintf(
		"%[1]s.company_id, %[1]s.created_by, %[1]s.updated_by, COALESCE(TRIM(cu.first_name || ' ' || cu.last_name), ''), %[1]s.created_at, %[1]s.updated_at",
		alias)
}

func creatorJoin(alias string) string {
	return "LEFT JOIN users cu ON cu.id = " + alias + ".created_by"
}

func auditDest(a *entity.Audit) []any {
	return []any{&a.CompanyID, &a.CreatedBy, &a.UpdatedBy, &a.CreatedByName, &a.CreatedAt, &a.UpdatedAt}
}

// softDelete marca la fila como eliminada. Devuelve ErrNotFound si no había fila activa.
func softDelete(ctx context.Context, q Querier, table string, companyID, id, actorID int64) error {
	query := fmt.Sprintf(`
		UPDATE %s t SET deleted_at = now(), deleted_by = $3, updated_by = $3, updated_at = now()
		WHERE t.id = $1 AND t.company_id = $2 AND %s`, table, activeScope("t"))
	cmd, err := q.Exec(ctx, query, id, companyID, actorID)
	if err != nil {
		return fmt.Errorf("soft delete %s: %w", table, err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// countActive cuenta filas activas de table con column = value dentro del tenant.
func countActive(ctx context.Context, q Querier, table, column string, companyID, value int64, extra string) (int64, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s t WHERE t.company_id = $1 AND t.%s = $2 AND %s%s`,
		table, column, activeScope("t"), extra)
	var n int64
	if err := q.QueryRow(ctx, query, companyID, value).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return n, nil
}

// countGrouped devuelve conteos de filas activas agrupados por column.
func countGrouped(ctx context.Context, q Querier, table, column string, companyID int64) (map[string]int64, error) {
	query := fmt.Sprintf(`SELECT t.%[2]s, COUNT(*) FROM %[1]s t WHERE t.company_id = $1 AND %[3]s GROUP BY t.%[2]s`,
		table, column, activeScope("t"))
	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("count %s by %s: %w", table, column, err)
	}
	defer rows.Close()
	out := make(map[string]int64)
	for rows.Next() {
		var k string
		var n int64
		if err := rows.Scan(&k, &n); err != nil {
			return nil, err
		}
		out[k] = n
	}
	return out, rows.Err()
}

// listBuilder arma WHERE/ORDER/LIMIT parametrizados para los listados.
// Siempre arranca con el tenant y activeScope.
type listBuilder struct {
	alias string
	where []string
	args  []any
}

func newListBuilder(alias string, companyID int64) *listBuilder {
	return &listBuilder{
		alias: alias,
		where: []string{alias + ".company_id = $1", activeScope(alias)},
		args:  []any{companyID},
	}
}

// add agrega una condición; "?" se reemplaza por el siguiente placeholder.
func (b *listBuilder) add(cond string, arg any) {
	b.args = append(b.args, arg)
	b.where = append(b.where, strings.ReplaceAll(cond, "?", fmt.Sprintf("$%d", len(b.args))))
}

// search busca el término como subcadena sin distinguir mayúsculas en las columnas dadas.
func (b *listBuilder) search(term string, cols ...string) {
	if term == "" || len(cols) == 0 {
		return
	}
	parts := make([]string, len(cols))
	for i, c := range cols {
		parts[i] = c + " ILIKE ?"
	}
	b.add("("+strings.Join(parts, " OR ")+")", "%"+likeEscaper.Replace(term)+"%")
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (b *listBuilder) whereSQL() string {
	return " WHERE " + strings.Join(b.where, " AND ")
}

// pageSQL devuelve ORDER BY + LIMIT/OFFSET y sus argumentos. El desempate por id mantiene páginas estables.
func (b *listBuilder) pageSQL(q repository.ListQuery, allowed repository.SortFields) (string, []any) {
	col := q.SortBy
	if !allowed.Allows(col) {
		col = repository.DefaultSort
	}
	dir := "ASC"
	if q.SortDesc {
		dir = "DESC"
	}
	n := len(b.args)
	clause := fmt.Sprintf(" ORDER BY %[1]s.%[2]s %[3]s, %[1]s.id %[3]s LIMIT $%[4]d OFFSET $%[5]d", b.alias, col, dir, n+1, n+2)
	return clause, append(append([]any{}, b.args...), q.Limit, q.Offset)
}

// count ejecuta SELECT COUNT(*) con los filtros acumulados.
func (b *listBuilder) count(ctx context.Context, q Querier, from string) (int64, error) {
	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM "+from+b.whereSQL(), b.args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return false
}

// isCheckViolation detecta violaciones de CHECK (23514), p. ej. stock >= 0.
func isCheckViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23514"
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// nullIfZero convierte 0 a NULL para claves foráneas opcionales.
func nullIfZero(id *int64) any {
	if id == nil || *id == 0 {
		return nil
	}
	return *id
}
