package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ordercheff/api/pkg/models"
)

// PostgresStore implements the Store interface using pgx/v5.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgresStore.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Ping checks database connectivity.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

const tenantCols = `id, subdomain, business_name, description, logo_url, email, phone, address, is_active, settings, created_at, updated_at`

func scanTenant(row pgx.Row) (*models.Tenant, error) {
	var t models.Tenant
	err := row.Scan(&t.ID, &t.Subdomain, &t.BusinessName, &t.Description, &t.LogoURL,
		&t.Email, &t.Phone, &t.Address, &t.IsActive, &t.Settings, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan tenant: %w", err)
	}
	return &t, nil
}

// --- Tenants ---

// CreateTenantWithAdmin inserts the tenant and its admin user in one
// transaction; registration never leaves a tenant without an admin.
func (s *PostgresStore) CreateTenantWithAdmin(ctx context.Context, t *models.Tenant, admin *models.User) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`INSERT INTO tenants (id, subdomain, business_name, description, logo_url, email, phone, address, is_active, settings, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		t.ID, t.Subdomain, t.BusinessName, t.Description, t.LogoURL, t.Email, t.Phone,
		t.Address, t.IsActive, t.Settings, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		if isDuplicateKeyError(err) {
			return ErrDuplicateKey
		}
		return fmt.Errorf("create tenant: %w", err)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO users (id, tenant_id, name, email, password_hash, role, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		admin.ID, admin.TenantID, admin.Name, admin.Email, admin.PasswordHash, admin.Role,
		admin.CreatedAt, admin.UpdatedAt)
	if err != nil {
		if isDuplicateKeyError(err) {
			return ErrDuplicateKey
		}
		return fmt.Errorf("create admin user: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetActiveTenant(ctx context.Context, id uuid.UUID) (*models.Tenant, error) {
	return scanTenant(s.pool.QueryRow(ctx,
		`SELECT `+tenantCols+` FROM tenants WHERE id = $1 AND is_active`, id))
}

func (s *PostgresStore) GetActiveTenantBySubdomain(ctx context.Context, subdomain string) (*models.Tenant, error) {
	return scanTenant(s.pool.QueryRow(ctx,
		`SELECT `+tenantCols+` FROM tenants WHERE subdomain = $1 AND is_active`, subdomain))
}

func (s *PostgresStore) SubdomainTaken(ctx context.Context, subdomain string) (bool, error) {
	var taken bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM tenants WHERE subdomain = $1)`, subdomain).Scan(&taken)
	if err != nil {
		return false, fmt.Errorf("check subdomain: %w", err)
	}
	return taken, nil
}

func (s *PostgresStore) UpdateTenantProfile(ctx context.Context, id uuid.UUID, p TenantProfileParams) (*models.Tenant, error) {
	return scanTenant(s.pool.QueryRow(ctx,
		`UPDATE tenants SET
		   business_name = COALESCE($2, business_name),
		   description   = COALESCE($3, description),
		   logo_url      = COALESCE($4, logo_url),
		   email         = COALESCE($5, email),
		   phone         = COALESCE($6, phone),
		   address       = COALESCE($7, address),
		   settings      = COALESCE($8, settings),
		   updated_at    = NOW()
		 WHERE id = $1 AND is_active
		 RETURNING `+tenantCols,
		id, p.BusinessName, p.Description, p.LogoURL, p.Email, p.Phone, p.Address, p.Settings))
}

func (s *PostgresStore) DeactivateTenant(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE tenants SET is_active = FALSE, updated_at = NOW() WHERE id = $1 AND is_active`, id)
	if err != nil {
		return fmt.Errorf("deactivate tenant: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// --- Users ---

func (s *PostgresStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := s.pool.QueryRow(ctx,
		`SELECT id, tenant_id, name, email, password_hash, role, created_at, updated_at
		 FROM users WHERE email = $1`, email).
		Scan(&u.ID, &u.TenantID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return &u, nil
}

// --- Categories ---

const categoryCols = `id, tenant_id, name, description, image_url, is_active, position, created_at, updated_at`

func scanCategory(row pgx.Row) (*models.Category, error) {
	var c models.Category
	err := row.Scan(&c.ID, &c.TenantID, &c.Name, &c.Description, &c.ImageURL,
		&c.IsActive, &c.Position, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan category: %w", err)
	}
	return &c, nil
}

func (s *PostgresStore) CreateCategory(ctx context.Context, c *models.Category) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO categories (id, tenant_id, name, description, image_url, is_active, position, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		c.ID, c.TenantID, c.Name, c.Description, c.ImageURL, c.IsActive, c.Position, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create category: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListCategories(ctx context.Context, tenantID uuid.UUID, activeOnly bool) ([]*models.Category, error) {
	q := `SELECT ` + categoryCols + ` FROM categories WHERE tenant_id = $1`
	if activeOnly {
		q += ` AND is_active`
	}
	q += ` ORDER BY position, created_at`

	rows, err := s.pool.Query(ctx, q, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var cats []*models.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		cats = append(cats, c)
	}
	return cats, rows.Err()
}

func (s *PostgresStore) GetCategory(ctx context.Context, tenantID, id uuid.UUID) (*models.Category, error) {
	return scanCategory(s.pool.QueryRow(ctx,
		`SELECT `+categoryCols+` FROM categories WHERE tenant_id = $1 AND id = $2`, tenantID, id))
}

func (s *PostgresStore) UpdateCategory(ctx context.Context, tenantID uuid.UUID, c *models.Category) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE categories SET name = $3, description = $4, image_url = $5, is_active = $6, position = $7, updated_at = NOW()
		 WHERE tenant_id = $1 AND id = $2`,
		tenantID, c.ID, c.Name, c.Description, c.ImageURL, c.IsActive, c.Position)
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) DeleteCategory(ctx context.Context, tenantID, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM categories WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// --- Products ---

const productCols = `id, tenant_id, category_id, name, description, price_cents, image_url, is_active, nutrition, allergens, prep_time_minutes, created_at, updated_at`

func scanProduct(row pgx.Row) (*models.Product, error) {
	var p models.Product
	err := row.Scan(&p.ID, &p.TenantID, &p.CategoryID, &p.Name, &p.Description, &p.PriceCents,
		&p.ImageURL, &p.IsActive, &p.Nutrition, &p.Allergens, &p.PrepTimeMinutes, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan product: %w", err)
	}
	return &p, nil
}

func (s *PostgresStore) CreateProduct(ctx context.Context, p *models.Product) error {
	// Category ownership is re-checked in the predicate so a product can
	// never be attached to another tenant's category.
	tag, err := s.pool.Exec(ctx,
		`INSERT INTO products (id, tenant_id, category_id, name, description, price_cents, image_url, is_active, nutrition, allergens, prep_time_minutes, created_at, updated_at)
		 SELECT $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13
		 WHERE EXISTS (SELECT 1 FROM categories WHERE tenant_id = $2 AND id = $3)`,
		p.ID, p.TenantID, p.CategoryID, p.Name, p.Description, p.PriceCents, p.ImageURL,
		p.IsActive, p.Nutrition, p.Allergens, p.PrepTimeMinutes, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) ListProducts(ctx context.Context, filter ProductFilter) ([]*models.Product, int, error) {
	where := `WHERE tenant_id = $1`
	args := []any{filter.TenantID}

	if filter.CategoryID != uuid.Nil {
		args = append(args, filter.CategoryID)
		where += fmt.Sprintf(` AND category_id = $%d`, len(args))
	}
	if filter.ActiveOnly {
		where += ` AND is_active`
	}

	var total int
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM products `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	q := `SELECT ` + productCols + ` FROM products ` + where + ` ORDER BY created_at`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		q += fmt.Sprintf(` LIMIT $%d`, len(args))
		if filter.Page > 1 {
			args = append(args, (filter.Page-1)*filter.Limit)
			q += fmt.Sprintf(` OFFSET $%d`, len(args))
		}
	}

	rows, err := s.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, err
		}
		products = append(products, p)
	}
	return products, total, rows.Err()
}

func (s *PostgresStore) GetProduct(ctx context.Context, tenantID, id uuid.UUID) (*models.Product, error) {
	return scanProduct(s.pool.QueryRow(ctx,
		`SELECT `+productCols+` FROM products WHERE tenant_id = $1 AND id = $2`, tenantID, id))
}

func (s *PostgresStore) UpdateProduct(ctx context.Context, tenantID uuid.UUID, p *models.Product) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE products SET category_id = $3, name = $4, description = $5, price_cents = $6, image_url = $7,
		   is_active = $8, nutrition = $9, allergens = $10, prep_time_minutes = $11, updated_at = NOW()
		 WHERE tenant_id = $1 AND id = $2
		   AND EXISTS (SELECT 1 FROM categories WHERE tenant_id = $1 AND id = $3)`,
		tenantID, p.ID, p.CategoryID, p.Name, p.Description, p.PriceCents, p.ImageURL,
		p.IsActive, p.Nutrition, p.Allergens, p.PrepTimeMinutes)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) DeleteProduct(ctx context.Context, tenantID, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM products WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// --- Menus ---

func (s *PostgresStore) CreateMenu(ctx context.Context, m *models.Menu) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`INSERT INTO menus (id, tenant_id, name, description, is_active, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		m.ID, m.TenantID, m.Name, m.Description, m.IsActive, m.CreatedAt, m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create menu: %w", err)
	}

	if err := replaceMenuCategories(ctx, tx, m); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListMenus(ctx context.Context, tenantID uuid.UUID) ([]*models.Menu, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, tenant_id, name, description, is_active, created_at, updated_at
		 FROM menus WHERE tenant_id = $1 ORDER BY created_at`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list menus: %w", err)
	}
	defer rows.Close()

	var menus []*models.Menu
	for rows.Next() {
		var m models.Menu
		if err := rows.Scan(&m.ID, &m.TenantID, &m.Name, &m.Description, &m.IsActive, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan menu: %w", err)
		}
		menus = append(menus, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, m := range menus {
		if err := s.loadMenuCategories(ctx, m); err != nil {
			return nil, err
		}
	}
	return menus, nil
}

func (s *PostgresStore) GetMenu(ctx context.Context, tenantID, id uuid.UUID) (*models.Menu, error) {
	var m models.Menu
	err := s.pool.QueryRow(ctx,
		`SELECT id, tenant_id, name, description, is_active, created_at, updated_at
		 FROM menus WHERE tenant_id = $1 AND id = $2`, tenantID, id).
		Scan(&m.ID, &m.TenantID, &m.Name, &m.Description, &m.IsActive, &m.CreatedAt, &m.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get menu: %w", err)
	}
	if err := s.loadMenuCategories(ctx, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *PostgresStore) UpdateMenu(ctx context.Context, tenantID uuid.UUID, m *models.Menu) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`UPDATE menus SET name = $3, description = $4, is_active = $5, updated_at = NOW()
		 WHERE tenant_id = $1 AND id = $2`,
		tenantID, m.ID, m.Name, m.Description, m.IsActive)
	if err != nil {
		return fmt.Errorf("update menu: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	if _, err := tx.Exec(ctx, `DELETE FROM menu_categories WHERE menu_id = $1`, m.ID); err != nil {
		return fmt.Errorf("clear menu categories: %w", err)
	}
	if err := replaceMenuCategories(ctx, tx, m); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func (s *PostgresStore) DeleteMenu(ctx context.Context, tenantID, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM menus WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	if err != nil {
		return fmt.Errorf("delete menu: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// replaceMenuCategories links the menu to its categories. The category
// predicate requires the menu's own tenant, so a menu can never reference
// another tenant's category.
func replaceMenuCategories(ctx context.Context, tx pgx.Tx, m *models.Menu) error {
	for i, catID := range m.CategoryIDs {
		tag, err := tx.Exec(ctx,
			`INSERT INTO menu_categories (menu_id, category_id, position)
			 SELECT $1, $2, $3
			 WHERE EXISTS (SELECT 1 FROM categories WHERE tenant_id = $4 AND id = $2)`,
			m.ID, catID, i, m.TenantID)
		if err != nil {
			return fmt.Errorf("link menu category: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return ErrNotFound
		}
	}
	return nil
}

func (s *PostgresStore) loadMenuCategories(ctx context.Context, m *models.Menu) error {
	rows, err := s.pool.Query(ctx,
		`SELECT category_id FROM menu_categories WHERE menu_id = $1 ORDER BY position`, m.ID)
	if err != nil {
		return fmt.Errorf("load menu categories: %w", err)
	}
	defer rows.Close()

	m.CategoryIDs = []uuid.UUID{}
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return fmt.Errorf("scan menu category: %w", err)
		}
		m.CategoryIDs = append(m.CategoryIDs, id)
	}
	return rows.Err()
}

func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
