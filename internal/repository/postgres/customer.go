package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/telemark/telemark-server/internal/model"
)

var _ model.CustomerStore = (*CustomerRepository)(nil)

type CustomerRepository struct {
	db *Connection
}

func NewCustomerRepository(db *Connection) *CustomerRepository {
	return &CustomerRepository{
		db: db,
	}
}

func (r *CustomerRepository) Create(ctx context.Context, customer model.Customer) (model.Customer, error) {
	query := `
		INSERT INTO customers (id, owner_id, name, number, email, location, gender, masked_birth_date, age, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, owner_id, name, number, email, location, gender, masked_birth_date, age, created_at`

	var saved model.Customer
	err := r.db.QueryRow(ctx, query,
		customer.ID, customer.OwnerID, customer.Name, customer.Number, customer.Email,
		customer.Location, string(customer.Gender), customer.MaskedBirthDate, customer.Age, customer.CreatedAt,
	).Scan(
		&saved.ID, &saved.OwnerID, &saved.Name, &saved.Number, &saved.Email,
		&saved.Location, &saved.Gender, &saved.MaskedBirthDate, &saved.Age, &saved.CreatedAt,
	)
	if err != nil {
		return model.Customer{}, err
	}

	return saved, nil
}

// FindByIdentity looks up a customer by the dedup key (owner, name,
// number, email). Rows matching on the key are the same customer even
// when location or birth date differ.
func (r *CustomerRepository) FindByIdentity(ctx context.Context, ownerID uuid.UUID, name, number, email string) (model.Customer, error) {
	query := `
		SELECT c.id, c.owner_id, c.name, c.number, c.email, c.location, c.gender, c.masked_birth_date, c.age, c.created_at
		FROM customers c
		WHERE c.owner_id = $1 AND c.name = $2 AND c.number = $3 AND c.email = $4
		LIMIT 1`

	var customer model.Customer
	err := r.db.QueryRow(ctx, query, ownerID, name, number, email).Scan(
		&customer.ID, &customer.OwnerID, &customer.Name, &customer.Number, &customer.Email,
		&customer.Location, &customer.Gender, &customer.MaskedBirthDate, &customer.Age, &customer.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Customer{}, model.ErrNotFound
		}
		return model.Customer{}, err
	}

	return customer, nil
}

func (r *CustomerRepository) GetByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]model.Customer, error) {
	query := `
		SELECT c.id, c.owner_id, c.name, c.number, c.email, c.location, c.gender, c.masked_birth_date, c.age, c.created_at
		FROM customers c
		WHERE c.owner_id = $1
		ORDER BY c.created_at DESC`

	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanCustomers(rows)
}

func (r *CustomerRepository) FilterByIDs(ctx context.Context, ownerID uuid.UUID, ids []uuid.UUID) ([]model.Customer, error) {
	query := `
		SELECT c.id, c.owner_id, c.name, c.number, c.email, c.location, c.gender, c.masked_birth_date, c.age, c.created_at
		FROM customers c
		WHERE c.owner_id = $1 AND c.id = ANY($2)
		ORDER BY c.created_at DESC`

	rows, err := r.db.Query(ctx, query, ownerID, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanCustomers(rows)
}

func (r *CustomerRepository) Update(ctx context.Context, customer model.Customer) (model.Customer, error) {
	query := `
		UPDATE customers
		SET name = $3, number = $4, email = $5, location = $6, gender = $7
		WHERE id = $1 AND owner_id = $2
		RETURNING id, owner_id, name, number, email, location, gender, masked_birth_date, age, created_at`

	var saved model.Customer
	err := r.db.QueryRow(ctx, query,
		customer.ID, customer.OwnerID, customer.Name, customer.Number,
		customer.Email, customer.Location, string(customer.Gender),
	).Scan(
		&saved.ID, &saved.OwnerID, &saved.Name, &saved.Number, &saved.Email,
		&saved.Location, &saved.Gender, &saved.MaskedBirthDate, &saved.Age, &saved.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Customer{}, model.ErrNotFound
		}
		return model.Customer{}, err
	}

	return saved, nil
}

func (r *CustomerRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	const query = `DELETE FROM customers WHERE id = $1 AND owner_id = $2`
	cmd, err := r.db.Exec(ctx, query, id, ownerID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func scanCustomers(rows pgx.Rows) ([]model.Customer, error) {
	var customers []model.Customer
	for rows.Next() {
		var customer model.Customer
		err := rows.Scan(
			&customer.ID, &customer.OwnerID, &customer.Name, &customer.Number, &customer.Email,
			&customer.Location, &customer.Gender, &customer.MaskedBirthDate, &customer.Age, &customer.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		customers = append(customers, customer)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return customers, nil
}
