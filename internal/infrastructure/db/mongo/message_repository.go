package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/taskdesk/task-manager/internal/core/domain"
)

const collectionMessages = "messages"

// MessageRepository implements ports.MessageRepository. Feeds are returned
// in natural order; there is no sort key.
type MessageRepository struct {
	col *mongo.Collection
}

func NewMessageRepository(db *mongo.Database) *MessageRepository {
	return &MessageRepository{col: db.Collection(collectionMessages)}
}

type messageDoc struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty"`
	Sender    primitive.ObjectID  `bson:"sender"`
	Receiver  *primitive.ObjectID `bson:"receiver"`
	Text      string              `bson:"text"`
	ChatType  string              `bson:"chatType"`
	CreatedAt time.Time           `bson:"createdAt"`
	UpdatedAt time.Time           `bson:"updatedAt"`
}

func (d messageDoc) toDomain() *domain.Message {
	m := &domain.Message{
		ID:        d.ID.Hex(),
		SenderID:  d.Sender.Hex(),
		Text:      d.Text,
		ChatType:  domain.ChatType(d.ChatType),
		CreatedAt: d.CreatedAt.UTC(),
	}
	if d.Receiver != nil {
		m.ReceiverID = d.Receiver.Hex()
	}
	return m
}

// Create inserts msg and sets msg.ID. A receiver that is not a valid ID is
// reported as a validation error on receiverId.
func (r *MessageRepository) Create(ctx context.Context, msg *domain.Message) error {
	sender, ok := objectID(msg.SenderID)
	if !ok {
		return fmt.Errorf("insert message: invalid sender id %q", msg.SenderID)
	}

	doc := messageDoc{
		Sender:    sender,
		Text:      msg.Text,
		ChatType:  string(msg.ChatType),
		CreatedAt: msg.CreatedAt,
		UpdatedAt: msg.CreatedAt,
	}
	if msg.ReceiverID != "" {
		receiver, ok := objectID(msg.ReceiverID)
		if !ok {
			verr := domain.NewValidationError()
			verr.Add("receiverId", "receiverId must be a valid id")
			return verr
		}
		doc.Receiver = &receiver
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("insert message: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		msg.ID = oid.Hex()
	}
	return nil
}

func (r *MessageRepository) FindByID(ctx context.Context, id string) (*domain.Message, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrMessageNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc messageDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrMessageNotFound
		}
		return nil, fmt.Errorf("find message: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *MessageRepository) ListTeam(ctx context.Context) ([]*domain.Message, error) {
	return r.find(ctx, bson.M{"chatType": string(domain.ChatTeam)})
}

func (r *MessageRepository) ListPrivate(ctx context.Context, a, b string) ([]*domain.Message, error) {
	aid, ok := objectID(a)
	if !ok {
		return []*domain.Message{}, nil
	}
	bid, ok := objectID(b)
	if !ok {
		return []*domain.Message{}, nil
	}

	filter := bson.M{
		"chatType": string(domain.ChatUser),
		"$or": bson.A{
			bson.M{"sender": aid, "receiver": bid},
			bson.M{"sender": bid, "receiver": aid},
		},
	}
	return r.find(ctx, filter)
}

func (r *MessageRepository) find(ctx context.Context, filter bson.M) ([]*domain.Message, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find messages: %w", err)
	}
	var docs []messageDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode messages: %w", err)
	}

	msgs := make([]*domain.Message, 0, len(docs))
	for _, d := range docs {
		msgs = append(msgs, d.toDomain())
	}
	return msgs, nil
}

// EnsureIndexes creates the feed indexes on the messages collection.
func (r *MessageRepository) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "chatType", Value: 1}}},
		{Keys: bson.D{{Key: "sender", Value: 1}, {Key: "receiver", Value: 1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
