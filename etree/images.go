package etree

import (
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/xornal"
)

const (
	photosSuffix = ".photos"
	fileSuffix   = ".file"
	textSuffix   = ".text"
)

type photoPart struct {
	key   string
	value string
}

// images reads the last photo group of the item. URLs and captions are
// paired by the identifier they share once the .file/.text suffix is
// removed; when the identifiers do not line up they are paired in
// document order. Nothing is returned unless both halves have the same
// non-zero size.
func images(root *etree.Element) []xornal.Image {
	var out []xornal.Image
	for _, c := range root.FindElements(".//NewsComponent") {
		if strings.HasSuffix(c.SelectAttrValue("Duid", ""), photosSuffix) {
			out = photoGroup(c)
		}
	}
	return out
}

func photoGroup(group *etree.Element) []xornal.Image {
	var urls, captions []photoPart
	seenURL := make(map[string]bool)
	seenCaption := make(map[string]bool)

	for _, c := range group.FindElements(".//NewsComponent") {
		duid := c.SelectAttrValue("Duid", "")
		switch {
		case strings.HasSuffix(duid, fileSuffix):
			item := c.FindElement(".//ContentItem[@Href]")
			if item == nil {
				continue
			}
			href := strings.TrimSpace(item.SelectAttrValue("Href", ""))
			if href == "" || seenURL[href] {
				continue
			}
			seenURL[href] = true
			urls = append(urls, photoPart{key: strings.TrimSuffix(duid, fileSuffix), value: href})
		case strings.HasSuffix(duid, textSuffix):
			caption := strings.TrimSpace(findText(c, captionPaths...))
			if caption == "" || seenCaption[caption] {
				continue
			}
			seenCaption[caption] = true
			captions = append(captions, photoPart{key: strings.TrimSuffix(duid, textSuffix), value: caption})
		}
	}

	if len(urls) == 0 || len(urls) != len(captions) {
		return nil
	}

	byKey := make(map[string]string, len(captions))
	for _, c := range captions {
		byKey[c.key] = c.value
	}

	out := make([]xornal.Image, len(urls))
	for i, u := range urls {
		caption, ok := byKey[u.key]
		if !ok {
			return inOrder(urls, captions)
		}
		out[i] = xornal.Image{URL: u.value, Caption: xornal.StringPtr(caption)}
	}
	return out
}

func inOrder(urls, captions []photoPart) []xornal.Image {
	out := make([]xornal.Image, len(urls))
	for i := range urls {
		out[i] = xornal.Image{URL: urls[i].value, Caption: xornal.StringPtr(captions[i].value)}
	}
	return out
}
