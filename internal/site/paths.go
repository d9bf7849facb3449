package site

import (
	"strings"
	"unicode"
)

// Site URLs are root-relative and end in "/" for pages.
const (
	HomeURL            = "/"
	SoftwareSystemsURL = "/software-systems/"
	StylesheetPath     = "css/style.css"
)

// Slug turns a name into a lowercase path segment of letters, digits and dashes.
func Slug(name string) string {
	var sb strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if dash && sb.Len() > 0 {
				sb.WriteByte('-')
			}
			dash = false
			sb.WriteRune(r)
			continue
		}
		dash = true
	}
	if sb.Len() == 0 {
		return "unnamed"
	}
	return sb.String()
}

// SystemURL is the info page of the software system with the given name.
func SystemURL(name string) string {
	return SoftwareSystemsURL + Slug(name) + "/"
}

// SystemPageURL is the page of a software system for a tab.
func SystemPageURL(name string, tab Tab) string {
	base := SystemURL(name)
	switch tab {
	case TabContext:
		return base + "context/"
	case TabStructure:
		return base + "container/"
	case TabDynamic:
		return base + "dynamic/"
	case TabDeployment:
		return base + "deployment/"
	default:
		return base
	}
}

// ContainerURL is the component page of a container.
func ContainerURL(systemName, containerName string) string {
	return SystemPageURL(systemName, TabStructure) + Slug(containerName) + "/"
}

// SVGPath and PUMLPath are the download locations of a view's diagram.
func SVGPath(key string) string  { return "svg/" + Slug(key) + ".svg" }
func PUMLPath(key string) string { return "puml/" + Slug(key) + ".puml" }

// OutputPath maps a page URL to the file written for it.
func OutputPath(url string) string {
	return strings.TrimPrefix(url, "/") + "index.html"
}

// Relative returns a link from the page at URL from to the site path to.
// from must be a page URL; to may be a page URL or a file path.
func Relative(from, to string) string {
	fromDirs := segments(from)
	toParts := strings.Split(strings.TrimPrefix(to, "/"), "/")
	toDirs, last := toParts[:len(toParts)-1], toParts[len(toParts)-1]

	i := 0
	for i < len(fromDirs) && i < len(toDirs) && fromDirs[i] == toDirs[i] {
		i++
	}
	var sb strings.Builder
	for range fromDirs[i:] {
		sb.WriteString("../")
	}
	for _, d := range toDirs[i:] {
		sb.WriteString(d)
		sb.WriteByte('/')
	}
	sb.WriteString(last)
	if sb.Len() == 0 {
		return "./"
	}
	return sb.String()
}

func segments(url string) []string {
	trimmed := strings.Trim(url, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}
