package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/cleanhub/marketplace-api/internal/core/domain"
)

const collectionBookings = "bookings"

type BookingRepository struct {
	col *mongo.Collection
}

func NewBookingRepository(db *mongo.Database) *BookingRepository {
	return &BookingRepository{col: db.Collection(collectionBookings)}
}

type bookingDoc struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Requester     string             `bson:"email"`
	ServiceID     string             `bson:"service_id"`
	ServiceName   string             `bson:"service_name"`
	Date          string             `bson:"date,omitempty"`
	TotalPrice    float64            `bson:"total_price"`
	Status        string             `bson:"status"`
	Paid          bool               `bson:"paid"`
	TransactionID string             `bson:"transaction_id,omitempty"`
	CreatedAt     time.Time          `bson:"created_at"`
}

func (d *bookingDoc) toDomain() *domain.Booking {
	return &domain.Booking{
		ID:            d.ID.Hex(),
		Requester:     d.Requester,
		ServiceID:     d.ServiceID,
		ServiceName:   d.ServiceName,
		Date:          d.Date,
		TotalPrice:    d.TotalPrice,
		Status:        domain.BookingStatus(d.Status),
		Paid:          d.Paid,
		TransactionID: d.TransactionID,
		CreatedAt:     d.CreatedAt,
	}
}

// Create inserts a new booking document and returns its generated id.
func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := bookingDoc{
		Requester:   b.Requester,
		ServiceID:   b.ServiceID,
		ServiceName: b.ServiceName,
		Date:        b.Date,
		TotalPrice:  b.TotalPrice,
		Status:      string(b.Status),
		Paid:        b.Paid,
		CreatedAt:   b.CreatedAt,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("insert booking: %w", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("insert booking: unexpected id type %T", res.InsertedID)
	}
	return oid.Hex(), nil
}

func (r *BookingRepository) FindByID(ctx context.Context, id string) (*domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrBookingNotFound
	}

	var doc bookingDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, fmt.Errorf("find booking: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *BookingRepository) FindByRequester(ctx context.Context, email string) ([]*domain.Booking, error) {
	return r.find(ctx, bson.M{"email": email})
}

func (r *BookingRepository) List(ctx context.Context) ([]*domain.Booking, error) {
	return r.find(ctx, bson.M{})
}

func (r *BookingRepository) find(ctx context.Context, filter bson.M) ([]*domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer cur.Close(ctx)

	var bookings []*domain.Booking
	for cur.Next(ctx) {
		var doc bookingDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode booking: %w", err)
		}
		bookings = append(bookings, doc.toDomain())
	}
	return bookings, cur.Err()
}

// UpdateStatus conditionally moves the booking from one status to another
// in a single document-level update. Matching nothing is reported, not
// treated as an error; the caller decides what a zero-match means.
func (r *BookingRepository) UpdateStatus(ctx context.Context, id string, from, to domain.BookingStatus) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": oid, "status": string(from)},
		bson.M{"$set": bson.M{"status": string(to)}},
	)
	if err != nil {
		return false, fmt.Errorf("update booking status: %w", err)
	}
	return res.ModifiedCount > 0, nil
}

// RecordPayment atomically marks the booking paid, stores the transaction
// id, and moves it to the paid status.
func (r *BookingRepository) RecordPayment(ctx context.Context, id, transactionID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrBookingNotFound
	}

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{
			"paid":           true,
			"transaction_id": transactionID,
			"status":         string(domain.BookingPaid),
		}},
	)
	if err != nil {
		return fmt.Errorf("record payment: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrBookingNotFound
	}
	return nil
}

func (r *BookingRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrBookingNotFound
	}

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete booking: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrBookingNotFound
	}
	return nil
}

// EnsureIndexes creates necessary indexes on the bookings collection.
func (r *BookingRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
