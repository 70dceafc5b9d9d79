package util

import (
	"html/template"
	"sort"
	"strconv"
)

// Pages returns a sparse selection of page numbers from 1 to numPages: the first and last page,
// the current page and pages at exponentially growing distance from it.
func Pages(currentPage int, numPages int) []int {

	var set = map[int]bool{
		1:           true,
		currentPage: true,
		numPages:    true,
	}

	for delta := 1; currentPage-delta > 1 || currentPage+delta < numPages; delta *= 2 {
		if currentPage-delta > 0 {
			set[currentPage-delta] = true
		}
		if currentPage+delta < numPages {
			set[currentPage+delta] = true
		}
	}

	var pages = make([]int, 0, len(set))
	for page := range set {
		pages = append(pages, page)
	}
	sort.Ints(pages)
	return pages
}

// PageLinks calls Pages and renders each page number with link, or with current if it is the current page.
// Links to the previous and next page are added if they exist.
func PageLinks(currentPage int, numPages int, link func(page int, name string) string, current func(page int, name string) string) []template.HTML {

	var links = []template.HTML{}

	if currentPage < 1 || numPages < 1 {
		return links
	}

	if currentPage > 1 {
		links = append(links, template.HTML(link(currentPage-1, `&laquo;`)))
	}

	for _, page := range Pages(currentPage, numPages) {
		var render = link
		if page == currentPage {
			render = current
		}
		links = append(links, template.HTML(render(page, strconv.Itoa(page))))
	}

	if currentPage < numPages {
		links = append(links, template.HTML(link(currentPage+1, `&raquo;`)))
	}

	return links
}
