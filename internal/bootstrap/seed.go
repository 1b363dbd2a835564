package bootstrap

import (
	"log"

	"github.com/Goodnessmbakara/skillsverse/internal/entity"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.User{},
		&entity.Job{},
		&entity.Match{},
		&entity.LearningResource{},
		&entity.Notification{},
	)
}

func strPtr(s string) *string {
	return &s
}

var defaultLearningResources = []entity.LearningResource{
	{
		Title:       "Move on Sui: Objects and Ownership",
		Description: "Hands-on introduction to Sui Move objects, abilities and transfer rules.",
		Type:        "course",
		Difficulty:  "beginner",
		URL:         "https://docs.sui.io/concepts/sui-move-concepts",
		Blockchain:  strPtr("sui"),
		Skills:      []string{"Move", "Sui", "Smart Contracts"},
	},
	{
		Title:       "Solidity by Example",
		Description: "Short annotated Solidity programs covering the language from basics to common patterns.",
		Type:        "tutorial",
		Difficulty:  "intermediate",
		URL:         "https://solidity-by-example.org",
		Blockchain:  strPtr("ethereum"),
		Skills:      []string{"Solidity", "Ethereum", "Smart Contracts"},
	},
	{
		Title:       "Anchor Framework Book",
		Description: "Building Solana programs in Rust with the Anchor framework.",
		Type:        "documentation",
		Difficulty:  "intermediate",
		URL:         "https://www.anchor-lang.com/docs",
		Blockchain:  strPtr("solana"),
		Skills:      []string{"Rust", "Solana", "Anchor"},
	},
	{
		Title:       "zkLogin Integration Guide",
		Description: "Deriving on-chain addresses from OAuth credentials with zero-knowledge proofs.",
		Type:        "guide",
		Difficulty:  "advanced",
		URL:         "https://docs.sui.io/concepts/cryptography/zklogin",
		Blockchain:  strPtr("sui"),
		Skills:      []string{"zkLogin", "OAuth", "Sui"},
	},
	{
		Title:       "TypeScript for dApp Frontends",
		Description: "Typed wallet integration and transaction building for web3 frontends.",
		Type:        "course",
		Difficulty:  "beginner",
		URL:         "https://www.typescriptlang.org/docs/",
		Skills:      []string{"TypeScript", "React", "Web3"},
	},
}

// SeedLearningResources inserts the default catalog entries that are not
// present yet, matching on title.
func SeedLearningResources(db *gorm.DB) error {
	created := 0
	for _, resource := range defaultLearningResources {
		var count int64
		if err := db.Model(&entity.LearningResource{}).
			Where("title = ?", resource.Title).
			Count(&count).Error; err != nil {
			return err
		}

		if count == 0 {
			r := resource
			if err := db.Create(&r).Error; err != nil {
				return err
			}
			created++
		}
	}

	if created > 0 {
		log.Printf("✅ Seeded %d learning resources", created)
	}
	return nil
}
