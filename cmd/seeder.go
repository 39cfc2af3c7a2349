package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample orders for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer db.Close()

		gormDB, err := initGorm(db)
		if err != nil {
			log.Fatalf("failed to init gorm: %v", err)
		}

		if clearData {
			if err := gormDB.Exec("DELETE FROM payments").Error; err != nil {
				log.Fatalf("failed to clear payments: %v", err)
			}
			if err := gormDB.Exec("DELETE FROM orders").Error; err != nil {
				log.Fatalf("failed to clear orders: %v", err)
			}
			fmt.Println("Cleared existing orders and payments")
		}

		samples := []struct {
			CustomerName string
			Items        string
			TotalAmount  float64
			Status       string
		}{
			{"Fadhil", "1x mechanical keyboard", 500.00, "PLACED"},
			{"Padil", "2x usb-c cable, 1x charger", 74.50, "PLACED"},
			{"Rina", "1x monitor stand", 129.99, "PROCESSING"},
		}

		for _, s := range samples {
			var exists int
			row := gormDB.Raw("SELECT 1 FROM orders WHERE customer_name = ? AND items = ?", s.CustomerName, s.Items).Row()
			if err := row.Scan(&exists); err == nil {
				fmt.Printf("order for %s already exists, skipping\n", s.CustomerName)
				continue
			}

			if err := gormDB.Exec(
				"INSERT INTO orders (customer_name, items, total_amount, status, created_at) VALUES (?, ?, ?, ?, now())",
				s.CustomerName, s.Items, s.TotalAmount, s.Status,
			).Error; err != nil {
				log.Fatalf("failed to insert order for %s: %v", s.CustomerName, err)
			}
			fmt.Printf("Seeded order for %s (%s)\n", s.CustomerName, s.Status)
		}
	},
}
