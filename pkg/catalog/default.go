package catalog

import "github.com/matzehuels/collage/pkg/scatter"

// Default returns the built-in portfolio catalog. Every call returns a fresh
// copy.
func Default() *Catalog {
	c := &Catalog{
		Images:   append([]Image(nil), defaultImages...),
		Projects: make([]Project, len(defaultProjects)),
	}
	for i, p := range defaultProjects {
		p.Images = append([]string(nil), p.Images...)
		c.Projects[i] = p
	}
	return c
}

var defaultImages = []Image{
	{ID: "1", Src: "https://images.unsplash.com/photo-1506905925346-21bda4d32df4?w=800", Alt: "Mountain landscape at sunset", Category: "nature", Aspect: AspectLandscape, Size: scatter.SizeLarge, Color: "#FF006E"},
	{ID: "2", Src: "https://images.unsplash.com/photo-1534528741775-53994a69daeb?w=600", Alt: "Portrait of woman with bold makeup", Category: "portrait", Aspect: AspectPortrait, Size: scatter.SizeMedium, Color: "#3A86FF"},
	{ID: "3", Src: "https://images.unsplash.com/photo-1519389950473-47ba0277781c?w=600", Alt: "Team working on laptops", Category: "corporate", Aspect: AspectLandscape, Size: scatter.SizeMedium, Color: "#8AFF80"},
	{ID: "4", Src: "https://images.unsplash.com/photo-1493225457124-a3eb161ffa5f?w=600", Alt: "Concert crowd with stage lights", Category: "events", Aspect: AspectLandscape, Size: scatter.SizeLarge, Color: "#FFFF00"},
	{ID: "5", Src: "https://images.unsplash.com/photo-1529626455594-4ff0802cfb7e?w=500", Alt: "Fashion model in urban setting", Category: "fashion", Aspect: AspectPortrait, Size: scatter.SizeSmall, Color: "#FF6B35"},
	{ID: "6", Src: "https://images.unsplash.com/photo-1518770660439-4636190af475?w=600", Alt: "Abstract technology", Category: "abstract", Aspect: AspectSquare, Size: scatter.SizeMedium, Color: "#3A86FF"},
	{ID: "7", Src: "https://images.unsplash.com/photo-1552083375-1447ce886485?w=700", Alt: "Street photography at night", Category: "street", Aspect: AspectLandscape, Size: scatter.SizeLarge, Color: "#FF006E"},
	{ID: "8", Src: "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=500", Alt: "Portrait man with beard", Category: "portrait", Aspect: AspectPortrait, Size: scatter.SizeSmall, Color: "#8AFF80"},
	{ID: "9", Src: "https://images.unsplash.com/photo-1470071459604-3b5ec3a7fe05?w=800", Alt: "Misty forest morning", Category: "nature", Aspect: AspectLandscape, Size: scatter.SizeLarge, Color: "#FFFF00"},
	{ID: "10", Src: "https://images.unsplash.com/photo-1523275335684-37898b6baf30?w=500", Alt: "Product watch on surface", Category: "product", Aspect: AspectSquare, Size: scatter.SizeSmall, Color: "#FF6B35"},
	{ID: "11", Src: "https://images.unsplash.com/photo-1544005313-94ddf0286df2?w=600", Alt: "Close up portrait", Category: "portrait", Aspect: AspectPortrait, Size: scatter.SizeMedium, Color: "#3A86FF"},
	{ID: "12", Src: "https://images.unsplash.com/photo-1492684223066-81342ee5ff30?w=700", Alt: "City lights at night", Category: "urban", Aspect: AspectLandscape, Size: scatter.SizeMedium, Color: "#FF006E"},
}

var defaultProjects = []Project{
	{
		Slug:        "urban-portraits",
		Title:       "Urban Portraits",
		Subtitle:    "Street Photography Series",
		Year:        "2024",
		Description: "A raw exploration of human connection in chaotic urban environments. Each frame captures unfiltered moments of city life.",
		Images: []string{
			"https://images.unsplash.com/photo-1534528741775-53994a69daeb?w=1400",
			"https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=1400",
			"https://images.unsplash.com/photo-1544005313-94ddf0286df2?w=1400",
			"https://images.unsplash.com/photo-1552374196-c4e7ffc6e126?w=1400",
		},
	},
	{
		Slug:        "neon-nights",
		Title:       "Neon Nights",
		Subtitle:    "City After Dark",
		Year:        "2024",
		Description: "When the sun sets, the city reveals its true colors. Neon-soaked streets become stages for untold stories.",
		Images: []string{
			"https://images.unsplash.com/photo-1492684223066-81342ee5ff30?w=1400",
			"https://images.unsplash.com/photo-1552083375-1447ce886485?w=1400",
			"https://images.unsplash.com/photo-1519608487953-e999c86e7455?w=1400",
			"https://images.unsplash.com/photo-1504805572947-34fad45aed93?w=1400",
		},
	},
	{
		Slug:        "wild-landscapes",
		Title:       "Wild Landscapes",
		Subtitle:    "Nature Untamed",
		Year:        "2023",
		Description: "Dramatic vistas and untouched wilderness. Where nature's power meets photographic patience.",
		Images: []string{
			"https://images.unsplash.com/photo-1506905925346-21bda4d32df4?w=1400",
			"https://images.unsplash.com/photo-1470071459604-3b5ec3a7fe05?w=1400",
			"https://images.unsplash.com/photo-1469474968028-56623f02e42e?w=1400",
			"https://images.unsplash.com/photo-1441974231531-c6227db76b6e?w=1400",
		},
	},
	{
		Slug:        "concert-energy",
		Title:       "Concert Energy",
		Subtitle:    "Live Music Photography",
		Year:        "2023",
		Description: "Raw energy captured in split seconds. The sweat, the lights, the crowd, pure adrenaline frozen in time.",
		Images: []string{
			"https://images.unsplash.com/photo-1493225457124-a3eb161ffa5f?w=1400",
			"https://images.unsplash.com/photo-1501386761578-eac5c94b800a?w=1400",
			"https://images.unsplash.com/photo-1470229722913-7c0e2dbbafd3?w=1400",
			"https://images.unsplash.com/photo-1459749411175-04bf5292ceea?w=1400",
		},
	},
}
