package style

import (
	"fmt"
	"strings"
)

// Property is a raw value for a CSS property. For example, with
//
//     color: black
//
// a property value of "black" is set.
type Property string

func (p Property) String() string {
	return string(p)
}

// KeyValue is a container for a style property.
type KeyValue struct {
	Key   string
	Value Property
}

// --- Known properties -------------------------------------------------

// Symbolic names for string literals, denoting property groups.
const (
	PGMargins    = "Margins"
	PGPadding    = "Padding"
	PGBorder     = "Border"
	PGDimension  = "Dimension"
	PGDisplay    = "Display"
	PGFlex       = "Flex"
	PGRegion     = "Region"
	PGColor      = "Color"
	PGBackground = "Background"
	PGText       = "Text"
	PGFont       = "Font"
	PGEffects    = "Effects"
	PGInteract   = "Interaction"
	PGX          = "X"
)

var groupNameFromPropertyKey = map[string]string{
	"margin":                     PGMargins,
	"margin-top":                 PGMargins,
	"margin-left":                PGMargins,
	"margin-right":               PGMargins,
	"margin-bottom":              PGMargins,
	"padding":                    PGPadding,
	"padding-top":                PGPadding,
	"padding-left":               PGPadding,
	"padding-right":              PGPadding,
	"padding-bottom":             PGPadding,
	"border":                     PGBorder,
	"border-top":                 PGBorder,
	"border-left":                PGBorder,
	"border-right":               PGBorder,
	"border-bottom":              PGBorder,
	"border-color":               PGBorder,
	"border-width":               PGBorder,
	"border-style":               PGBorder,
	"border-radius":              PGBorder,
	"border-top-color":           PGBorder,
	"border-left-color":          PGBorder,
	"border-right-color":         PGBorder,
	"border-bottom-color":        PGBorder,
	"border-top-width":           PGBorder,
	"border-left-width":          PGBorder,
	"border-right-width":         PGBorder,
	"border-bottom-width":        PGBorder,
	"border-top-style":           PGBorder,
	"border-left-style":          PGBorder,
	"border-right-style":         PGBorder,
	"border-bottom-style":        PGBorder,
	"border-top-left-radius":     PGBorder,
	"border-top-right-radius":    PGBorder,
	"border-bottom-left-radius":  PGBorder,
	"border-bottom-right-radius": PGBorder,
	"outline":                    PGBorder,
	"width":                      PGDimension,
	"height":                     PGDimension,
	"min-width":                  PGDimension,
	"min-height":                 PGDimension,
	"max-width":                  PGDimension,
	"max-height":                 PGDimension,
	"box-sizing":                 PGDimension,
	"display":                    PGDisplay,
	"float":                      PGDisplay,
	"visibility":                 PGDisplay,
	"position":                   PGDisplay,
	"top":                        PGDisplay,
	"right":                      PGDisplay,
	"bottom":                     PGDisplay,
	"left":                       PGDisplay,
	"z-index":                    PGDisplay,
	"overflow":                   PGDisplay,
	"overflow-x":                 PGDisplay,
	"overflow-y":                 PGDisplay,
	"flex":                       PGFlex,
	"flex-direction":             PGFlex,
	"flex-wrap":                  PGFlex,
	"flex-grow":                  PGFlex,
	"flex-shrink":                PGFlex,
	"flex-basis":                 PGFlex,
	"align-items":                PGFlex,
	"align-self":                 PGFlex,
	"align-content":              PGFlex,
	"justify-content":            PGFlex,
	"gap":                        PGFlex,
	"order":                      PGFlex,
	"flow-into":                  PGRegion,
	"flow-from":                  PGRegion,
	"color":                      PGColor,
	"opacity":                    PGColor,
	"background":                 PGBackground,
	"background-color":           PGBackground,
	"background-image":           PGBackground,
	"background-size":            PGBackground,
	"background-position":        PGBackground,
	"background-repeat":          PGBackground,
	"direction":                  PGText,
	"white-space":                PGText,
	"word-spacing":               PGText,
	"letter-spacing":             PGText,
	"word-break":                 PGText,
	"word-wrap":                  PGText,
	"text-align":                 PGText,
	"text-decoration":            PGText,
	"text-transform":             PGText,
	"text-overflow":              PGText,
	"line-height":                PGText,
	"font":                       PGFont,
	"font-family":                PGFont,
	"font-size":                  PGFont,
	"font-weight":                PGFont,
	"font-style":                 PGFont,
	"box-shadow":                 PGEffects,
	"text-shadow":                PGEffects,
	"transform":                  PGEffects,
	"transition":                 PGEffects,
	"filter":                     PGEffects,
	"clip-path":                  PGEffects,
	"cursor":                     PGInteract,
	"pointer-events":             PGInteract,
	"scrollbar-width":            PGInteract,
	"-webkit-user-select":        PGInteract,
	"-moz-user-select":           PGInteract,
	"-webkit-backdrop-filter":    PGEffects,
	"-webkit-box-reflect":        PGEffects,
	"-webkit-text-stroke":        PGText,
}

// GroupNameFromPropertyKey returns the style property group name for a
// style property.
// Example:
//    GroupNameFromPropertyKey("margin-top") => "Margins"
//
// Unknown style property keys will return a group name of "X".
func GroupNameFromPropertyKey(key string) string {
	groupname, found := groupNameFromPropertyKey[key]
	if !found {
		groupname = PGX
	}
	return groupname
}

// IsKnownProperty is true for every property name in the table of known
// properties and for custom properties ("--name").
func IsKnownProperty(key string) bool {
	if strings.HasPrefix(key, "--") && len(key) > 2 {
		return true
	}
	return GroupNameFromPropertyKey(key) != PGX
}

// IsCompoundProperty is true for shorthand properties which
// SplitCompoundProperty knows how to distribute.
func IsCompoundProperty(key string) bool {
	switch key {
	case "margin", "padding", "border-color", "border-width", "border-style", "border-radius":
		return true
	}
	return false
}

// SplitCompoundProperty splits up a shortcut property into its individual
// components. Returns a slice of key-value pairs representing the
// individual (fine grained) style properties.
// Example:
//    SplitCompoundProperty("padding", "3px")
// will return
//    "padding-top"    => "3px"
//    "padding-right"  => "3px"
//    "padding-bottom" => "3px"
//    "padding-left"   => "3px"
// For the logic behind this, refer to e.g.
// https://www.w3schools.com/css/css_padding.asp .
func SplitCompoundProperty(key string, value Property) ([]KeyValue, error) {
	fields := strings.Fields(value.String())
	switch key {
	case "margin":
		return feazeCompound4("margin", "", fourDirs, fields)
	case "padding":
		return feazeCompound4("padding", "", fourDirs, fields)
	case "border-color":
		return feazeCompound4("border", "color", fourDirs, fields)
	case "border-width":
		return feazeCompound4("border", "width", fourDirs, fields)
	case "border-style":
		return feazeCompound4("border", "style", fourDirs, fields)
	case "border-radius":
		return feazeCompound4("border", "radius", fourCorners, fields)
	}
	return nil, fmt.Errorf("not recognized as compound property: %s", key)
}

// CSS logic to distribute individual values from compound shortcuts is as
// follows: https://www.w3schools.com/css/css_border.asp
func feazeCompound4(pre string, suf string, dirs [4]string, fields []string) ([]KeyValue, error) {
	l := len(fields)
	if l == 0 || l > 4 {
		return nil, fmt.Errorf("expecting 1-4 values for %s", p(pre, suf, "*"))
	}
	r := make([]KeyValue, 4)
	r[0] = KeyValue{p(pre, suf, dirs[0]), Property(fields[0])}
	if l >= 2 {
		r[1] = KeyValue{p(pre, suf, dirs[1]), Property(fields[1])}
		if l >= 3 {
			r[2] = KeyValue{p(pre, suf, dirs[2]), Property(fields[2])}
			if l == 4 {
				r[3] = KeyValue{p(pre, suf, dirs[3]), Property(fields[3])}
			} else {
				r[3] = KeyValue{p(pre, suf, dirs[3]), Property(fields[1])}
			}
		} else {
			r[2] = KeyValue{p(pre, suf, dirs[2]), Property(fields[0])}
			r[3] = KeyValue{p(pre, suf, dirs[3]), Property(fields[1])}
		}
	} else {
		r[1] = KeyValue{p(pre, suf, dirs[1]), Property(fields[0])}
		r[2] = KeyValue{p(pre, suf, dirs[2]), Property(fields[0])}
		r[3] = KeyValue{p(pre, suf, dirs[3]), Property(fields[0])}
	}
	return r, nil
}

var fourDirs = [4]string{"top", "right", "bottom", "left"}
var fourCorners = [4]string{"top-left", "top-right", "bottom-right", "bottom-left"}

func p(prefix string, suffix string, tag string) string {
	if suffix == "" {
		return prefix + "-" + tag
	}
	if prefix == "" {
		return tag + "-" + suffix
	}
	return prefix + "-" + tag + "-" + suffix
}
