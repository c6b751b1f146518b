package seeders

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type seedFloor struct {
	Number int
	Name   string
	Rooms  []string
}

var demoBuilding = []seedFloor{
	{Number: 1, Name: "Ground Floor", Rooms: []string{"101", "102", "103", "104"}},
	{Number: 2, Name: "Second Floor", Rooms: []string{"201", "202", "203"}},
	{Number: 3, Name: "Third Floor", Rooms: []string{"301", "302"}},
}

func seedStructure(ctx context.Context, db *pgxpool.Pool, logger *zap.Logger) error {
	for _, floor := range demoBuilding {
		var floorID string
		err := db.QueryRow(ctx, `
			INSERT INTO floors (name, floor_number) VALUES ($1, $2)
			ON CONFLICT (floor_number) DO UPDATE SET name = floors.name
			RETURNING id`,
			floor.Name, floor.Number,
		).Scan(&floorID)
		if err != nil {
			return fmt.Errorf("floor %d: %w", floor.Number, err)
		}

		for _, number := range floor.Rooms {
			_, err := db.Exec(ctx, `
				INSERT INTO rooms (room_number, floor_id, floor_number) VALUES ($1, $2, $3)
				ON CONFLICT (floor_id, room_number) DO NOTHING`,
				number, floorID, floor.Number,
			)
			if err != nil {
				return fmt.Errorf("room %s: %w", number, err)
			}
		}
		logger.Info("floor seeded", zap.Int("floor_number", floor.Number), zap.Int("rooms", len(floor.Rooms)))
	}
	return nil
}
