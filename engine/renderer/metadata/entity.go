package metadata

import "github.com/spaghettifunk/pointfield/engine/math"

/** @brief What an entity is drawn with. Empty fields fall back to defaults. */
type AssetRef struct {
	/** @brief Registered texture name, if any. */
	Texture string
}

/**
 * @brief One drawable element of a simulation snapshot.
 */
type Entity struct {
	Asset    AssetRef
	Position math.Vec2
}
