package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	apperror "lojasocial/internal/errors"
)

// Campos de metadados guardados ao lado dos dados de cada documento.
const (
	mongoFieldID        = "_id"
	mongoFieldCreatedAt = FieldCreatedAt
	mongoFieldUpdatedAt = "_updatedAt"
)

// MongoStore mapeia cada coleção lógica para uma coleção MongoDB.
// As subscrições usam change streams, que exigem replica set.
type MongoStore struct {
	client  *mongo.Client
	db      *mongo.Database
	timeout time.Duration
}

// NewMongoStore liga ao MongoDB e confirma a ligação com um ping ao primário.
func NewMongoStore(ctx context.Context, uri, database string, timeout time.Duration) (*MongoStore, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetBSONOptions(&options.BSONOptions{DefaultDocumentM: true})

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("falha ao conectar ao MongoDB: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("falha ao realizar o ping inicial no MongoDB: %w", err)
	}
	return &MongoStore{client: client, db: client.Database(database), timeout: timeout}, nil
}

func (m *MongoStore) Create(ctx context.Context, collection string, v interface{}) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	obj, err := toObject(v)
	if err != nil {
		return "", apperror.NewValidationError(err.Error())
	}
	delete(obj, "id")

	id := uuid.NewString()
	now := time.Now().UTC()
	obj[mongoFieldID] = id
	obj[mongoFieldCreatedAt] = now
	obj[mongoFieldUpdatedAt] = now

	if _, err := m.db.Collection(collection).InsertOne(ctx, obj); err != nil {
		return "", apperror.NewDBError("falha ao criar documento", err)
	}
	return id, nil
}

func (m *MongoStore) Get(ctx context.Context, collection, id string) (Document, error) {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	var raw bson.M
	err := m.db.Collection(collection).FindOne(ctx, bson.M{mongoFieldID: id}).Decode(&raw)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Document{}, apperror.NewNotFoundError(collection + "/" + id)
	}
	if err != nil {
		return Document{}, apperror.NewDBError("falha ao ler documento", err)
	}
	return documentFromBSON(raw)
}

func (m *MongoStore) Set(ctx context.Context, collection, id string, v interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	obj, err := toObject(v)
	if err != nil {
		return apperror.NewValidationError(err.Error())
	}
	delete(obj, "id")

	coll := m.db.Collection(collection)
	var meta bson.M
	err = coll.FindOne(ctx, bson.M{mongoFieldID: id},
		options.FindOne().SetProjection(bson.M{mongoFieldCreatedAt: 1})).Decode(&meta)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return apperror.NewNotFoundError(collection + "/" + id)
	}
	if err != nil {
		return apperror.NewDBError("falha ao ler documento", err)
	}

	obj[mongoFieldCreatedAt] = meta[mongoFieldCreatedAt]
	obj[mongoFieldUpdatedAt] = time.Now().UTC()
	res, err := coll.ReplaceOne(ctx, bson.M{mongoFieldID: id}, obj)
	if err != nil {
		return apperror.NewDBError("falha ao atualizar documento", err)
	}
	if res.MatchedCount == 0 {
		return apperror.NewNotFoundError(collection + "/" + id)
	}
	return nil
}

func (m *MongoStore) Update(ctx context.Context, collection, id string, fields map[string]interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	patch, err := toObject(fields)
	if err != nil {
		return apperror.NewValidationError(err.Error())
	}
	delete(patch, "id")
	patch[mongoFieldUpdatedAt] = time.Now().UTC()

	res, err := m.db.Collection(collection).UpdateOne(ctx, bson.M{mongoFieldID: id}, bson.M{"$set": patch})
	if err != nil {
		return apperror.NewDBError("falha ao atualizar documento", err)
	}
	if res.MatchedCount == 0 {
		return apperror.NewNotFoundError(collection + "/" + id)
	}
	return nil
}

func (m *MongoStore) Delete(ctx context.Context, collection, id string) error {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	res, err := m.db.Collection(collection).DeleteOne(ctx, bson.M{mongoFieldID: id})
	if err != nil {
		return apperror.NewDBError("falha ao apagar documento", err)
	}
	if res.DeletedCount == 0 {
		return apperror.NewNotFoundError(collection + "/" + id)
	}
	return nil
}

func (m *MongoStore) Find(ctx context.Context, q Query) ([]Document, error) {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	filter := bson.M{}
	if q.Field != "" {
		value, err := normalizeValue(q.Value)
		if err != nil {
			return nil, apperror.NewValidationError("valor de filtro inválido")
		}
		filter[q.Field] = value
	}

	dir := 1
	if q.Desc {
		dir = -1
	}
	sort := bson.D{}
	if q.OrderBy != "" && q.OrderBy != FieldCreatedAt {
		sort = append(sort, bson.E{Key: q.OrderBy, Value: dir})
	}
	sort = append(sort, bson.E{Key: mongoFieldCreatedAt, Value: dir})

	opts := options.Find().SetSort(sort)
	if q.Limit > 0 {
		opts.SetLimit(int64(q.Limit))
	}

	cursor, err := m.db.Collection(q.Collection).Find(ctx, filter, opts)
	if err != nil {
		return nil, apperror.NewDBError("falha ao consultar documentos", err)
	}
	var raws []bson.M
	if err := cursor.All(ctx, &raws); err != nil {
		return nil, apperror.NewDBError("falha ao ler documentos", err)
	}

	out := make([]Document, 0, len(raws))
	for _, raw := range raws {
		doc, err := documentFromBSON(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, nil
}

func (m *MongoStore) Subscribe(ctx context.Context, q Query, onSnapshot func([]Document), onError func(error)) (Subscription, error) {
	streamCtx, cancelStream := context.WithCancel(ctx)
	cs, err := m.db.Collection(q.Collection).Watch(streamCtx, mongo.Pipeline{})
	if err != nil {
		cancelStream()
		return nil, apperror.NewDBError("falha ao abrir change stream", err)
	}

	events := make(chan struct{}, 1)
	errs := make(chan error, 1)
	go func() {
		defer close(events)
		defer cs.Close(context.Background())
		for cs.Next(streamCtx) {
			select {
			case events <- struct{}{}:
			default:
			}
		}
		if err := cs.Err(); err != nil && streamCtx.Err() == nil {
			errs <- apperror.NewDBError("change stream interrompido", err)
		}
	}()

	find := func(ctx context.Context) ([]Document, error) { return m.Find(ctx, q) }
	return runSubscription(ctx, find, events, errs, cancelStream, onSnapshot, onError), nil
}

func (m *MongoStore) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, readpref.Primary())
}

func (m *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return m.client.Disconnect(ctx)
}

// documentFromBSON separa os metadados e devolve os dados como JSON.
func documentFromBSON(raw bson.M) (Document, error) {
	doc := Document{}
	if id, ok := raw[mongoFieldID].(string); ok {
		doc.ID = id
	}
	doc.CreatedAt = bsonTime(raw[mongoFieldCreatedAt])
	doc.UpdatedAt = bsonTime(raw[mongoFieldUpdatedAt])
	delete(raw, mongoFieldID)
	delete(raw, mongoFieldCreatedAt)
	delete(raw, mongoFieldUpdatedAt)

	data, err := json.Marshal(raw)
	if err != nil {
		return Document{}, apperror.NewDBError("documento não convertível para JSON", err)
	}
	doc.Data = data
	return doc, nil
}

func bsonTime(v interface{}) time.Time {
	switch t := v.(type) {
	case primitive.DateTime:
		return t.Time().UTC()
	case time.Time:
		return t.UTC()
	}
	return time.Time{}
}
