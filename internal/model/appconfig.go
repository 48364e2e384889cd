package model

// maxRecent caps the recent file and project lists.
const maxRecent = 10

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Defaults for generated parts
	DefaultColour Colour  `json:"default_colour"` // colour of new primitives
	DXFThickness  float64 `json:"dxf_thickness"`  // extrusion height for DXF profiles
	PrimitiveSize float64 `json:"primitive_size"` // edge length of new box/cylinder/sphere parts
	MeshCells     int     `json:"mesh_cells"`     // marching cubes resolution for primitives

	// Logging
	LogLevel  string `json:"log_level"`
	LogFormat string `json:"log_format"` // "console" or "json"

	// Application preferences
	RecentFiles    []string `json:"recent_files"`
	RecentProjects []string `json:"recent_projects"`
	Theme          string   `json:"theme"` // "light", "dark", "system"
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		DefaultColour:  White(),
		DXFThickness:   3,
		PrimitiveSize:  10,
		MeshCells:      48,
		LogLevel:       "info",
		LogFormat:      "console",
		RecentFiles:    []string{},
		RecentProjects: []string{},
		Theme:          "system",
	}
}

// AddRecentFile moves path to the front of RecentFiles.
func (c *AppConfig) AddRecentFile(path string) {
	c.RecentFiles = pushRecent(c.RecentFiles, path)
}

// AddRecentProject moves path to the front of RecentProjects.
func (c *AppConfig) AddRecentProject(path string) {
	c.RecentProjects = pushRecent(c.RecentProjects, path)
}

func pushRecent(list []string, path string) []string {
	out := []string{path}
	for _, p := range list {
		if p != path && len(out) < maxRecent {
			out = append(out, p)
		}
	}
	return out
}
