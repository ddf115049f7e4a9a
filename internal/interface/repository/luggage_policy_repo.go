package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"flightlist-service/internal/domain/entity"
	"flightlist-service/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormLuggagePolicyRepository implements the LuggagePolicyRepository interface
type GormLuggagePolicyRepository struct {
	db *gorm.DB
}

// NewGormLuggagePolicyRepository creates a new GORM luggage policy repository
func NewGormLuggagePolicyRepository(db *gorm.DB) *GormLuggagePolicyRepository {
	return &GormLuggagePolicyRepository{
		db: db,
	}
}

// LuggagePolicies GORM model for database mapping
type LuggagePolicies struct {
	ID            uint                `gorm:"primaryKey"`
	Airline       string              `gorm:"column:airline;unique"`
	CarryOnWeight string              `gorm:"column:carry_on_weight"`
	CarryOnFree   bool                `gorm:"column:carry_on_free"`
	CheckedWeight string              `gorm:"column:checked_weight"`
	CheckedFree   bool                `gorm:"column:checked_free"`
	CheckedNote   string              `gorm:"column:checked_note"`
	ExtraTiers    []ExtraBaggageTiers `gorm:"foreignKey:PolicyID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName overrides the default table name
func (LuggagePolicies) TableName() string {
	return "m_luggage_policies"
}

// ExtraBaggageTiers GORM model for purchasable checked baggage
type ExtraBaggageTiers struct {
	ID               uint   `gorm:"primaryKey"`
	PolicyID         uint   `gorm:"column:policy_id;index;uniqueIndex:idx_policy_weight"`
	Weight           string `gorm:"column:weight;uniqueIndex:idx_policy_weight"`
	WeightValue      int    `gorm:"column:weight_value"`
	BeforeThreeHours int    `gorm:"column:before_three_hours"`
	AfterThreeHours  int    `gorm:"column:after_three_hours"`
}

// TableName overrides the default table name
func (ExtraBaggageTiers) TableName() string {
	return "m_extra_baggage_tiers"
}

// GetByAirline finds a policy by airline name
func (r *GormLuggagePolicyRepository) GetByAirline(ctx context.Context, airline string) (*entity.AirlineLuggagePolicy, error) {
	var model LuggagePolicies
	result := r.withTiers(ctx).Where("airline = ?", airline).First(&model)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("luggage policy for %q: %w", airline, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get luggage policy: %w", result.Error)
	}

	policy := toLuggagePolicyEntity(model)
	return &policy, nil
}

// List returns all policies ordered by airline
func (r *GormLuggagePolicyRepository) List(ctx context.Context) ([]entity.AirlineLuggagePolicy, error) {
	var models []LuggagePolicies
	if err := r.withTiers(ctx).Order("airline").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list luggage policies: %w", err)
	}

	policies := make([]entity.AirlineLuggagePolicy, 0, len(models))
	for _, m := range models {
		policies = append(policies, toLuggagePolicyEntity(m))
	}
	return policies, nil
}

// Seed migrates the tables and upserts the given policies
func (r *GormLuggagePolicyRepository) Seed(ctx context.Context, policies []entity.AirlineLuggagePolicy) error {
	if err := r.db.WithContext(ctx).AutoMigrate(&LuggagePolicies{}, &ExtraBaggageTiers{}); err != nil {
		return fmt.Errorf("failed to migrate luggage tables: %w", err)
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, p := range policies {
			model := LuggagePolicies{
				Airline:       p.Airline,
				CarryOnWeight: p.CarryOn.Weight,
				CarryOnFree:   p.CarryOn.Free,
				CheckedWeight: p.Checked.Weight,
				CheckedFree:   p.Checked.Free,
				CheckedNote:   p.Checked.Note,
			}
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "airline"}},
				DoUpdates: clause.AssignmentColumns([]string{"carry_on_weight", "carry_on_free", "checked_weight", "checked_free", "checked_note", "updated_at"}),
			}).Create(&model).Error
			if err != nil {
				return fmt.Errorf("failed to upsert policy %s: %w", p.Airline, err)
			}

			// ID is not populated on conflict for every dialect
			if err := tx.Where("airline = ?", p.Airline).First(&model).Error; err != nil {
				return err
			}
			if err := tx.Where("policy_id = ?", model.ID).Delete(&ExtraBaggageTiers{}).Error; err != nil {
				return err
			}
			for _, tier := range p.ExtraCheckedOptions {
				row := ExtraBaggageTiers{
					PolicyID:         model.ID,
					Weight:           tier.Weight,
					WeightValue:      tier.WeightValue,
					BeforeThreeHours: tier.BeforeThreeHours,
					AfterThreeHours:  tier.AfterThreeHours,
				}
				if err := tx.Create(&row).Error; err != nil {
					return fmt.Errorf("failed to insert tier %s/%s: %w", p.Airline, tier.Weight, err)
				}
			}
		}
		return nil
	})
}

func (r *GormLuggagePolicyRepository) withTiers(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("ExtraTiers", func(db *gorm.DB) *gorm.DB {
		return db.Order("weight_value ASC")
	})
}

// Convert GORM model to domain entity
func toLuggagePolicyEntity(m LuggagePolicies) entity.AirlineLuggagePolicy {
	policy := entity.AirlineLuggagePolicy{
		Airline: m.Airline,
		CarryOn: entity.Allowance{Weight: m.CarryOnWeight, Free: m.CarryOnFree},
		Checked: entity.Allowance{Weight: m.CheckedWeight, Free: m.CheckedFree, Note: m.CheckedNote},
	}
	for _, t := range m.ExtraTiers {
		policy.ExtraCheckedOptions = append(policy.ExtraCheckedOptions, entity.ExtraBaggageTier{
			Weight:           t.Weight,
			WeightValue:      t.WeightValue,
			BeforeThreeHours: t.BeforeThreeHours,
			AfterThreeHours:  t.AfterThreeHours,
		})
	}
	return policy
}
