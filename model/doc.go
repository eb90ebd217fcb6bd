// Package model provides geometric primitives shared by the pagination
// pipeline.
//
// Coordinates are top-left origin pixels: X grows rightward, Y grows
// downward. Every package that positions content on a page (flow, floats,
// render) uses these types.
//
//   - [BBox] - bounding box with intersection, union, and overlap calculations
//   - [Point] - 2D point with distance calculation
package model
