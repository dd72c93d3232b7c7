package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/wdmapp/delivery-map-backend/config"
	"github.com/wdmapp/delivery-map-backend/internal/app/model"
	"github.com/wdmapp/delivery-map-backend/internal/app/repository"
	"github.com/wdmapp/delivery-map-backend/internal/db"
	"github.com/wdmapp/delivery-map-backend/pkg/util"
	"github.com/xuri/excelize/v2"
)

// Imports delivery pins for a shop from an XLSX file. Expected columns:
// title, latitude, longitude, deliveryMode, color, radiusDistance, radiusUnit.
// The first row is treated as a header.
func main() {
	if len(os.Args) < 3 {
		log.Fatal("Usage: go run cmd/seed/main.go <shop_domain> <xlsx_file_path>")
	}

	shop := strings.TrimSpace(os.Args[1])
	filePath := os.Args[2]

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	pinRepo := repository.NewPinRepository(db.GetDB())

	fmt.Printf("Reading XLSX file: %s\n", filePath)
	pins, err := readPinsFromXLSX(shop, filePath)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}

	fmt.Printf("Total pins to import for %s: %d\n", shop, len(pins))

	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	batchSize := 1000
	fmt.Printf("Starting bulk import with batch size: %d\n", batchSize)
	if err := pinRepo.BulkCreate(pins, batchSize); err != nil {
		log.Fatal("Failed to bulk create pins:", err)
	}

	fmt.Println("Import completed successfully!")
	fmt.Printf("Total pins imported: %d\n", len(pins))
}

func readPinsFromXLSX(shop, filePath string) ([]model.DeliveryPin, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no sheets found in XLSX file")
	}

	fmt.Printf("Reading sheet: %s\n", sheetName)

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("no data found in XLSX file")
	}

	var pins []model.DeliveryPin
	skippedCount := 0

	for i, row := range rows {
		if i == 0 {
			fmt.Printf("Headers: %v\n", row)
			continue
		}

		if len(row) < 3 {
			skippedCount++
			continue
		}

		title := strings.TrimSpace(row[0])
		if title == "" {
			skippedCount++
			continue
		}

		lat, errLat := strconv.ParseFloat(strings.TrimSpace(row[1]), 64)
		lng, errLng := strconv.ParseFloat(strings.TrimSpace(row[2]), 64)
		if errLat != nil || errLng != nil || !util.ValidLatitude(lat) || !util.ValidLongitude(lng) {
			fmt.Printf("Row %d: invalid coordinates, skipping\n", i+1)
			skippedCount++
			continue
		}

		pin := model.DeliveryPin{
			Shop:            shop,
			Title:           title,
			Latitude:        lat,
			Longitude:       lng,
			DeliveryMode:    model.DeliveryModeBoth,
			Color:           model.DefaultPinColor,
			RadiusUnit:      util.RadiusUnitKm,
			FillColor:       model.DefaultZoneColor,
			BorderColor:     model.DefaultZoneColor,
			BorderThickness: model.DefaultBorderThickness,
			FillOpacity:     model.DefaultFillOpacity,
		}

		if len(row) > 3 {
			if mode := strings.TrimSpace(row[3]); mode != "" {
				switch mode {
				case model.DeliveryModeSameDay, model.DeliveryModeScheduled, model.DeliveryModeBoth:
					pin.DeliveryMode = mode
				default:
					fmt.Printf("Row %d: unknown delivery mode %q, using %q\n", i+1, mode, model.DeliveryModeBoth)
				}
			}
		}
		if len(row) > 4 {
			if color := strings.TrimSpace(row[4]); color != "" {
				pin.Color = color
			}
		}
		if len(row) > 5 {
			if raw := strings.TrimSpace(row[5]); raw != "" {
				distance, err := strconv.ParseFloat(raw, 64)
				if err != nil || distance <= 0 {
					fmt.Printf("Row %d: invalid radius distance %q, importing without a zone\n", i+1, raw)
				} else {
					pin.HasRadius = true
					pin.RadiusDistance = &distance
				}
			}
		}
		if len(row) > 6 && pin.HasRadius {
			if unit := strings.TrimSpace(row[6]); unit == util.RadiusUnitKm || unit == util.RadiusUnitMile {
				pin.RadiusUnit = unit
			}
		}

		pins = append(pins, pin)
	}

	if skippedCount > 0 {
		fmt.Printf("Skipped rows: %d\n", skippedCount)
	}

	return pins, nil
}
