package gormrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"civmap/internal/adapter/repo/gorm/model"
	"civmap/internal/app/ports"
	"civmap/internal/domain/world"
	"civmap/internal/domain/worldgen"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const DefaultChunkSize = 16

type WorldRepo struct {
	db        *gorm.DB
	chunkSize int
}

func NewWorldRepo(db *gorm.DB) WorldRepo {
	return WorldRepo{db: db, chunkSize: DefaultChunkSize}
}

func (r WorldRepo) Create(ctx context.Context, rec ports.WorldRecord) error {
	row := toWorldRow(rec, r.chunkSize)
	return getDBFromCtx(ctx, r.db).WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ports.ErrConflict
			}
			return err
		}
		return saveChunks(tx, rec.ID, rec.World.Chunks(r.chunkSize), row.UpdatedAt)
	})
}

func (r WorldRepo) Get(ctx context.Context, id string) (ports.WorldRecord, error) {
	db := getDBFromCtx(ctx, r.db).WithContext(ctx)
	var row model.World
	if err := db.Where("id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.WorldRecord{}, ports.ErrNotFound
		}
		return ports.WorldRecord{}, err
	}

	var rows []model.WorldChunk
	if err := db.Where("world_id = ?", id).Order("chunk_y, chunk_x").Find(&rows).Error; err != nil {
		return ports.WorldRecord{}, err
	}
	chunks := make([]world.Chunk, 0, len(rows))
	for _, c := range rows {
		tiles, err := decodeChunkTiles(c.Tiles)
		if err != nil {
			return ports.WorldRecord{}, fmt.Errorf("decode chunk (%d,%d): %w", c.ChunkX, c.ChunkY, err)
		}
		chunks = append(chunks, world.Chunk{Coord: world.ChunkCoord{X: int(c.ChunkX), Y: int(c.ChunkY)}, Tiles: tiles})
	}
	w, err := world.Assemble(int(row.Width), int(row.Height), row.WrappingX, row.WrappingY, int(row.ChunkSize), chunks)
	if err != nil {
		return ports.WorldRecord{}, err
	}
	return fromWorldRow(row, w), nil
}

func (r WorldRepo) SaveWithVersion(ctx context.Context, rec ports.WorldRecord, expectedVersion int64) error {
	return getDBFromCtx(ctx, r.db).WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row model.World
		if err := tx.Select("chunk_size").Where("id = ?", rec.ID).First(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ports.ErrNotFound
			}
			return err
		}
		updatedAt := rec.UpdatedAt
		if updatedAt.IsZero() {
			updatedAt = time.Now()
		}
		res := tx.Model(&model.World{}).
			Where("id = ? AND version = ?", rec.ID, expectedVersion).
			Updates(map[string]any{
				"turn":       rec.Turn,
				"version":    rec.Version,
				"updated_at": updatedAt,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ports.ErrConflict
		}
		return saveChunks(tx, rec.ID, rec.World.Chunks(int(row.ChunkSize)), updatedAt)
	})
}

func saveChunks(tx *gorm.DB, worldID string, chunks []world.Chunk, at time.Time) error {
	if len(chunks) == 0 {
		return nil
	}
	rows := make([]model.WorldChunk, 0, len(chunks))
	for _, c := range chunks {
		b, err := encodeChunkTiles(c.Tiles)
		if err != nil {
			return err
		}
		rows = append(rows, model.WorldChunk{
			WorldID:   worldID,
			ChunkX:    int32(c.Coord.X),
			ChunkY:    int32(c.Coord.Y),
			Tiles:     b,
			UpdatedAt: at,
		})
	}
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "world_id"}, {Name: "chunk_x"}, {Name: "chunk_y"}},
		DoUpdates: clause.AssignmentColumns([]string{"tiles", "updated_at"}),
	}).CreateInBatches(&rows, 100).Error
}

func toWorldRow(rec ports.WorldRecord, chunkSize int) model.World {
	created := rec.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	updated := rec.UpdatedAt
	if updated.IsZero() {
		updated = created
	}
	return model.World{
		ID:               rec.ID,
		Width:            int32(rec.World.Width()),
		Height:           int32(rec.World.Height()),
		WrappingX:        rec.World.WrappingX(),
		WrappingY:        rec.World.WrappingY(),
		WaterPercentage:  rec.Params.WaterPercentage,
		Seed:             rec.Params.Seed,
		LandDistribution: string(rec.Params.LandDistribution),
		Strategy:         string(rec.Strategy),
		ChunkSize:        int32(chunkSize),
		Turn:             rec.Turn,
		Version:          rec.Version,
		CreatedAt:        created,
		UpdatedAt:        updated,
	}
}

func fromWorldRow(row model.World, w *world.World) ports.WorldRecord {
	return ports.WorldRecord{
		ID: row.ID,
		Params: worldgen.Parameters{
			Width:            int(row.Width),
			Height:           int(row.Height),
			WrappingX:        row.WrappingX,
			WrappingY:        row.WrappingY,
			WaterPercentage:  row.WaterPercentage,
			Seed:             row.Seed,
			LandDistribution: worldgen.LandDistribution(row.LandDistribution),
		},
		Strategy:  worldgen.Strategy(row.Strategy),
		Turn:      row.Turn,
		Version:   row.Version,
		World:     w,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

func encodeChunkTiles(tiles []world.TileRecord) ([]byte, error) {
	return json.Marshal(tiles)
}

func decodeChunkTiles(data []byte) ([]world.TileRecord, error) {
	out := []world.TileRecord{}
	if len(data) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}
