package docstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	apperror "lojasocial/internal/errors"
	"lojasocial/internal/pkg/logger"
)

// Notifier é o canal de alterações entre instâncias do serviço (Redis pub/sub).
type Notifier interface {
	Publish(ctx context.Context, channel, message string) error
	Subscribe(ctx context.Context, channel string) (<-chan string, func() error, error)
}

// PostgresStore guarda todas as coleções numa única tabela JSONB `documents`.
type PostgresStore struct {
	db       *sqlx.DB
	notifier Notifier
	logger   logger.Logger
	timeout  time.Duration
}

func NewPostgresStore(db *sqlx.DB, notifier Notifier, log logger.Logger, timeout time.Duration) *PostgresStore {
	return &PostgresStore{db: db, notifier: notifier, logger: log, timeout: timeout}
}

type documentRow struct {
	ID        string    `db:"id"`
	Data      []byte    `db:"data"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r documentRow) document() Document {
	return Document{ID: r.ID, Data: r.Data, CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt}
}

func changesChannel(collection string) string {
	return "docstore:" + collection
}

func (p *PostgresStore) Create(ctx context.Context, collection string, v interface{}) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	obj, err := toObject(v)
	if err != nil {
		return "", apperror.NewValidationError(err.Error())
	}
	delete(obj, "id")
	data, _ := json.Marshal(obj)

	id := uuid.NewString()
	now := time.Now().UTC()
	query := `INSERT INTO documents (collection, id, data, created_at, updated_at) VALUES ($1, $2, $3::jsonb, $4, $4)`
	if _, err := p.db.ExecContext(ctx, query, collection, id, string(data), now); err != nil {
		return "", apperror.NewDBError("falha ao criar documento", err)
	}
	p.notify(collection, id)
	return id, nil
}

func (p *PostgresStore) Get(ctx context.Context, collection, id string) (Document, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	var row documentRow
	query := `SELECT id, data, created_at, updated_at FROM documents WHERE collection = $1 AND id = $2`
	err := p.db.GetContext(ctx, &row, query, collection, id)
	if errors.Is(err, sql.ErrNoRows) {
		return Document{}, apperror.NewNotFoundError(collection + "/" + id)
	}
	if err != nil {
		return Document{}, apperror.NewDBError("falha ao ler documento", err)
	}
	return row.document(), nil
}

func (p *PostgresStore) Set(ctx context.Context, collection, id string, v interface{}) error {
	obj, err := toObject(v)
	if err != nil {
		return apperror.NewValidationError(err.Error())
	}
	delete(obj, "id")
	data, _ := json.Marshal(obj)

	query := `UPDATE documents SET data = $3::jsonb, updated_at = $4 WHERE collection = $1 AND id = $2`
	return p.exec(ctx, collection, id, query, string(data))
}

func (p *PostgresStore) Update(ctx context.Context, collection, id string, fields map[string]interface{}) error {
	patch, err := toObject(fields)
	if err != nil {
		return apperror.NewValidationError(err.Error())
	}
	data, _ := json.Marshal(patch)

	query := `UPDATE documents SET data = data || $3::jsonb, updated_at = $4 WHERE collection = $1 AND id = $2`
	return p.exec(ctx, collection, id, query, string(data))
}

func (p *PostgresStore) exec(ctx context.Context, collection, id, query, data string) error {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	res, err := p.db.ExecContext(ctx, query, collection, id, data, time.Now().UTC())
	if err != nil {
		return apperror.NewDBError("falha ao atualizar documento", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperror.NewNotFoundError(collection + "/" + id)
	}
	p.notify(collection, id)
	return nil
}

func (p *PostgresStore) Delete(ctx context.Context, collection, id string) error {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	res, err := p.db.ExecContext(ctx, `DELETE FROM documents WHERE collection = $1 AND id = $2`, collection, id)
	if err != nil {
		return apperror.NewDBError("falha ao apagar documento", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperror.NewNotFoundError(collection + "/" + id)
	}
	p.notify(collection, id)
	return nil
}

func (p *PostgresStore) Find(ctx context.Context, q Query) ([]Document, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	query, args, err := buildFindQuery(q)
	if err != nil {
		return nil, err
	}
	var rows []documentRow
	if err := p.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, apperror.NewDBError("falha ao consultar documentos", err)
	}
	out := make([]Document, len(rows))
	for i, r := range rows {
		out[i] = r.document()
	}
	return out, nil
}

// buildFindQuery traduz Query para SQL. Nomes de campo seguem como parâmetros (data -> $n).
func buildFindQuery(q Query) (string, []interface{}, error) {
	var b strings.Builder
	args := []interface{}{q.Collection}
	b.WriteString(`SELECT id, data, created_at, updated_at FROM documents WHERE collection = $1`)

	if q.Field != "" {
		value, err := json.Marshal(q.Value)
		if err != nil {
			return "", nil, apperror.NewValidationError("valor de filtro inválido")
		}
		args = append(args, q.Field, string(value))
		fmt.Fprintf(&b, ` AND data -> $%d = $%d::jsonb`, len(args)-1, len(args))
	}

	dir := "ASC"
	if q.Desc {
		dir = "DESC"
	}
	if q.OrderBy != "" && q.OrderBy != FieldCreatedAt {
		args = append(args, q.OrderBy)
		fmt.Fprintf(&b, ` ORDER BY data -> $%d %s NULLS FIRST, created_at %s`, len(args), dir, dir)
	} else {
		fmt.Fprintf(&b, ` ORDER BY created_at %s`, dir)
	}
	if q.Limit > 0 {
		fmt.Fprintf(&b, ` LIMIT %d`, q.Limit)
	}
	return b.String(), args, nil
}

func (p *PostgresStore) Subscribe(ctx context.Context, q Query, onSnapshot func([]Document), onError func(error)) (Subscription, error) {
	msgs, closeFn, err := p.notifier.Subscribe(ctx, changesChannel(q.Collection))
	if err != nil {
		return nil, apperror.NewDBError("falha ao subscrever alterações", err)
	}
	stop := func() {
		if err := closeFn(); err != nil {
			p.logger.Warn("Falha ao fechar subscrição de alterações", map[string]interface{}{"collection": q.Collection, "error": err.Error()})
		}
	}
	find := func(ctx context.Context) ([]Document, error) { return p.Find(ctx, q) }
	return runSubscription(ctx, find, coalesce(msgs), nil, stop, onSnapshot, onError), nil
}

// notify publica a alteração. A escrita já foi confirmada, por isso uma falha só é registada.
func (p *PostgresStore) notify(collection, id string) {
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()
	if err := p.notifier.Publish(ctx, changesChannel(collection), id); err != nil {
		p.logger.Error("Falha ao publicar alteração de documento", err)
	}
}

func (p *PostgresStore) Ping(ctx context.Context) error {
	return p.db.PingContext(ctx)
}

func (p *PostgresStore) Close() error {
	return p.db.Close()
}
