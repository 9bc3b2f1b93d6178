package output

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/PierreLepagnol/foodops/internal/market"
	"github.com/PierreLepagnol/foodops/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

const allocationResultsDDL = `
CREATE TABLE IF NOT EXISTS allocation_results (
    turn INT NOT NULL,
    restaurant_id TEXT NOT NULL,
    allocated_demand INT NOT NULL,
    served_customers INT NOT NULL,
    capacity INT NOT NULL,
    utilization_rate DOUBLE PRECISION NOT NULL,
    lost_customers INT NOT NULL,
    revenue NUMERIC(12,4) NOT NULL,
    average_ticket NUMERIC(12,4) NOT NULL,
    recipe_sales JSONB,
    satisfaction DOUBLE PRECISION NOT NULL,
    reputation_after DOUBLE PRECISION NOT NULL,
    PRIMARY KEY (turn, restaurant_id)
)`

const marketAnalysisDDL = `
CREATE TABLE IF NOT EXISTS market_analysis (
    turn INT PRIMARY KEY,
    total_demand INT NOT NULL,
    total_served INT NOT NULL,
    total_capacity INT NOT NULL,
    total_revenue NUMERIC(14,4) NOT NULL,
    market_utilization DOUBLE PRECISION NOT NULL,
    demand_satisfaction DOUBLE PRECISION NOT NULL,
    average_ticket NUMERIC(12,4) NOT NULL
)`

// PostgresOutput persists turn results into a reporting database.
type PostgresOutput struct {
	pool *pgxpool.Pool
}

func NewPostgresOutput(cfg *models.DatabaseConfig) (*PostgresOutput, error) {
	ctx := context.Background()
	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
	)

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("error pinging database: %w", err)
	}

	p := &PostgresOutput{pool: pool}
	if err := p.ensureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return p, nil
}

func (p *PostgresOutput) ensureSchema(ctx context.Context) error {
	for _, ddl := range []string{allocationResultsDDL, marketAnalysisDDL} {
		if _, err := p.pool.Exec(ctx, ddl); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}

func (p *PostgresOutput) WriteMessage(topic string, msg []byte) error {
	ctx := context.Background()

	switch topic {
	case TopicMarketAnalysis:
		var analysis market.Analysis
		if err := json.Unmarshal(msg, &analysis); err != nil {
			return err
		}
		_, err := p.pool.Exec(ctx, `
            INSERT INTO market_analysis (
                turn, total_demand, total_served, total_capacity,
                total_revenue, market_utilization, demand_satisfaction, average_ticket
            ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
            ON CONFLICT (turn) DO NOTHING`,
			analysis.Turn,
			analysis.TotalDemand,
			analysis.TotalServed,
			analysis.TotalCapacity,
			analysis.TotalRevenue,
			analysis.MarketUtilization,
			analysis.DemandSatisfaction,
			analysis.AverageTicket,
		)
		if err != nil {
			return fmt.Errorf("failed to insert into market_analysis: %w", err)
		}
		return nil

	default:
		var result models.AllocationResult
		if err := json.Unmarshal(msg, &result); err != nil {
			return err
		}
		sales, err := json.Marshal(result.RecipeSales)
		if err != nil {
			return err
		}
		_, err = p.pool.Exec(ctx, `
            INSERT INTO allocation_results (
                turn, restaurant_id, allocated_demand, served_customers,
                capacity, utilization_rate, lost_customers, revenue,
                average_ticket, recipe_sales, satisfaction, reputation_after
            ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
            ON CONFLICT (turn, restaurant_id) DO NOTHING`,
			result.Turn,
			result.RestaurantID,
			result.AllocatedDemand,
			result.ServedCustomers,
			result.Capacity,
			result.UtilizationRate,
			result.LostCustomers,
			result.Revenue,
			result.AverageTicket,
			sales,
			result.Satisfaction,
			result.ReputationAfter,
		)
		if err != nil {
			return fmt.Errorf("failed to insert into allocation_results: %w", err)
		}
		return nil
	}
}

func (p *PostgresOutput) Close() error {
	p.pool.Close()
	return nil
}
