package database

import (
	"context"
	"errors"
	"fmt"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/sync/singleflight"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
	"zylumine/entity"
	"zylumine/internal/config"
	"zylumine/lib/sl"
)

const (
	collectionGuests = "guests"
	collectionAdmins = "admins"
	connectTimeout   = 10 * time.Second
)

// connection states
const (
	stateIdle int32 = iota
	stateConnecting
	stateConnected
)

// MongoDB is the process-wide gateway to the document store. The first caller of
// Connect opens the connection; concurrent callers share that attempt and later
// callers reuse the result.
type MongoDB struct {
	clientOptions *options.ClientOptions
	database      string
	log           *slog.Logger

	state  atomic.Int32
	group  singleflight.Group
	mu     sync.RWMutex
	client *mongo.Client

	// connector is replaced in tests
	connector func(ctx context.Context, opts ...*options.ClientOptions) (*mongo.Client, error)
}

func NewMongoClient(conf *config.Config, log *slog.Logger) *MongoDB {
	clientOptions := options.Client().
		ApplyURI(conf.Mongo.URI).
		SetServerSelectionTimeout(5 * time.Second)
	return &MongoDB{
		clientOptions: clientOptions,
		database:      conf.Mongo.Database,
		log:           log.With(sl.Module("database.mongo")),
		connector:     mongo.Connect,
	}
}

// NewWithClient wraps an already connected client.
func NewWithClient(client *mongo.Client, database string, log *slog.Logger) *MongoDB {
	m := &MongoDB{
		database: database,
		log:      log.With(sl.Module("database.mongo")),
		client:   client,
	}
	m.state.Store(stateConnected)
	return m
}

// Connect opens the connection unless it is already open; it is safe to call
// from every request.
func (m *MongoDB) Connect(ctx context.Context) error {
	if m.state.Load() == stateConnected {
		return nil
	}
	_, err, _ := m.group.Do("connect", func() (interface{}, error) {
		if m.state.Load() == stateConnected {
			return nil, nil
		}
		m.state.Store(stateConnecting)
		// the attempt is shared by every waiting caller, so it must outlive the first one
		attemptCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), connectTimeout)
		defer cancel()
		client, err := m.connector(attemptCtx, m.clientOptions)
		if err == nil {
			err = client.Ping(attemptCtx, nil)
			if err != nil {
				_ = client.Disconnect(attemptCtx)
			}
		}
		if err != nil {
			m.state.Store(stateIdle)
			m.log.Error("connect", sl.Err(err))
			return nil, fmt.Errorf("mongodb connect: %w", err)
		}
		m.mu.Lock()
		m.client = client
		m.mu.Unlock()
		m.state.Store(stateConnected)
		m.log.Info("connected", slog.String("database", m.database))
		return nil, nil
	})
	return err
}

// Connected reports whether a connection is established.
func (m *MongoDB) Connected() bool {
	return m.state.Load() == stateConnected
}

func (m *MongoDB) Disconnect(ctx context.Context) error {
	m.mu.Lock()
	client := m.client
	m.client = nil
	m.mu.Unlock()
	m.state.Store(stateIdle)
	if client == nil {
		return nil
	}
	return client.Disconnect(ctx)
}

func (m *MongoDB) collection(ctx context.Context, name string) (*mongo.Collection, error) {
	if err := m.Connect(ctx); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.client == nil {
		return nil, fmt.Errorf("mongodb: not connected")
	}
	return m.client.Database(m.database).Collection(name), nil
}

// EnsureIndexes creates the unique email index on both collections.
func (m *MongoDB) EnsureIndexes(ctx context.Context) error {
	for _, name := range []string{collectionGuests, collectionAdmins} {
		collection, err := m.collection(ctx, name)
		if err != nil {
			return err
		}
		model := mongo.IndexModel{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("email_unique"),
		}
		if _, err = collection.Indexes().CreateOne(ctx, model); err != nil {
			return fmt.Errorf("mongodb index %s: %w", name, err)
		}
	}
	return nil
}

func (m *MongoDB) insertError(err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("mongodb insert: %w", entity.ErrDuplicate)
	}
	return fmt.Errorf("mongodb insert: %w", err)
}

func (m *MongoDB) findError(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return entity.ErrNotFound
	}
	return fmt.Errorf("mongodb find: %w", err)
}

func insertedID(res *mongo.InsertOneResult) string {
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		return oid.Hex()
	}
	return fmt.Sprint(res.InsertedID)
}

// CreateGuest inserts the guest and fills its ID and timestamps; an existing
// email fails with entity.ErrDuplicate and leaves the stored record untouched.
func (m *MongoDB) CreateGuest(ctx context.Context, guest *entity.Guest) error {
	collection, err := m.collection(ctx, collectionGuests)
	if err != nil {
		return err
	}
	now := time.Now().UTC().Truncate(time.Millisecond)
	guest.ID = ""
	guest.CreatedAt = now
	guest.UpdatedAt = now
	res, err := collection.InsertOne(ctx, guest)
	if err != nil {
		return m.insertError(err)
	}
	guest.ID = insertedID(res)
	return nil
}

func (m *MongoDB) GuestByEmail(ctx context.Context, email string) (*entity.Guest, error) {
	collection, err := m.collection(ctx, collectionGuests)
	if err != nil {
		return nil, err
	}
	var guest entity.Guest
	if err = collection.FindOne(ctx, bson.D{{Key: "email", Value: email}}).Decode(&guest); err != nil {
		return nil, m.findError(err)
	}
	return &guest, nil
}

func (m *MongoDB) CreateAdmin(ctx context.Context, admin *entity.Admin) error {
	collection, err := m.collection(ctx, collectionAdmins)
	if err != nil {
		return err
	}
	now := time.Now().UTC().Truncate(time.Millisecond)
	admin.ID = ""
	admin.CreatedAt = now
	admin.UpdatedAt = now
	res, err := collection.InsertOne(ctx, admin)
	if err != nil {
		return m.insertError(err)
	}
	admin.ID = insertedID(res)
	return nil
}

func (m *MongoDB) AdminByEmail(ctx context.Context, email string) (*entity.Admin, error) {
	collection, err := m.collection(ctx, collectionAdmins)
	if err != nil {
		return nil, err
	}
	var admin entity.Admin
	if err = collection.FindOne(ctx, bson.D{{Key: "email", Value: email}}).Decode(&admin); err != nil {
		return nil, m.findError(err)
	}
	return &admin, nil
}
