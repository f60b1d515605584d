package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"resourcehub/internal/domain/auth"
	"resourcehub/internal/platform/config"
)

func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	if cfg.SeedAdminEmail != "" {
		if err := ensureEmployee(ctx, pool, seedEmployee{
			Email:    cfg.SeedAdminEmail,
			Name:     "System Administrator",
			Role:     auth.RoleAdmin,
			Level:    "L1",
			Password: cfg.SeedAdminPassword,
		}); err != nil {
			return err
		}
	}

	if cfg.SeedDemoData {
		return seedDemo(ctx, pool)
	}
	return nil
}

type seedEmployee struct {
	Email      string
	Name       string
	Role       auth.Role
	Level      string
	Department string
	Skills     []string
	Password   string
}

func ensureEmployee(ctx context.Context, pool *pgxpool.Pool, emp seedEmployee) error {
	var id string
	err := pool.QueryRow(ctx, "SELECT id FROM employees WHERE email = $1", emp.Email).Scan(&id)
	if err == nil {
		return nil
	}

	hash, err := auth.HashPassword(emp.Password)
	if err != nil {
		return fmt.Errorf("seed %s: %w", emp.Email, err)
	}

	skills := emp.Skills
	if skills == nil {
		skills = []string{}
	}
	_, err = pool.Exec(ctx, `
    INSERT INTO employees (email, name, password_hash, role, hierarchy_level, department, skills, status)
    VALUES ($1,$2,$3,$4,$5,$6,$7,'active')
  `, emp.Email, emp.Name, hash, string(emp.Role), emp.Level, emp.Department, skills)
	if err != nil {
		return fmt.Errorf("seed %s: %w", emp.Email, err)
	}
	return nil
}

func seedDemo(ctx context.Context, pool *pgxpool.Pool) error {
	demo := []seedEmployee{
		{Email: "hr@example.com", Name: "Hana Reyes", Role: auth.RoleHR, Level: "L8", Department: "People", Password: "Hr12345!"},
		{Email: "tl@example.com", Name: "Tomas Lindgren", Role: auth.RoleTechnicalLead, Level: "L7", Department: "Engineering", Skills: []string{"Go", "PostgreSQL"}, Password: "Tl12345!"},
		{Email: "pm@example.com", Name: "Priya Menon", Role: auth.RoleProjectManager, Level: "L4", Department: "Engineering", Password: "Pm12345!"},
		{Email: "dev1@example.com", Name: "Devon Clarke", Role: auth.RoleEmployee, Level: "L9", Department: "Engineering", Skills: []string{"Go", "React", "SQL"}, Password: "Dev12345!"},
		{Email: "dev2@example.com", Name: "Dana Okafor", Role: auth.RoleEmployee, Level: "L9", Department: "Engineering", Skills: []string{"Go", "React", "SQL"}, Password: "Dev12345!"},
	}
	for _, emp := range demo {
		if err := ensureEmployee(ctx, pool, emp); err != nil {
			return err
		}
	}
	return nil
}
