// Copyright 2026 The QuickDesk Authors
// SPDX-License-Identifier: Apache-2.0

package deskui

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// descriptionParserInstance is initialized once and reused. The
// goldmark Parser is safe to share; parsing creates per-call state.
var (
	descriptionParserInstance goldmark.Markdown
	descriptionParserOnce     sync.Once
)

func getDescriptionParser() goldmark.Markdown {
	descriptionParserOnce.Do(func() {
		descriptionParserInstance = goldmark.New(
			goldmark.WithExtensions(extension.GFM),
		)
	})
	return descriptionParserInstance
}

// renderDescription renders a ticket description (markdown) as styled
// terminal text wrapped to the given width. Soft line breaks inside
// paragraphs become spaces so hard-wrapped source reflows at any
// terminal width. Fenced code blocks are syntax-highlighted with
// Chroma when a language is tagged.
//
// Descriptions come from a plain-text form, so the renderer covers
// the constructs people actually type there: paragraphs, headings,
// emphasis, lists, blockquotes, code, links, and rules. Anything else
// degrades to its plain text content.
func renderDescription(input string, theme Theme, width int) string {
	if strings.TrimSpace(input) == "" {
		return ""
	}
	source := []byte(input)
	document := getDescriptionParser().Parser().Parse(text.NewReader(source))

	// Force the ANSI256 profile: this output is always for terminal
	// display, and auto-detection yields uncolored output in test
	// environments with no TTY.
	lipRenderer := lipgloss.NewRenderer(os.Stderr, termenv.WithProfile(termenv.ANSI256))
	lipRenderer.SetColorProfile(termenv.ANSI256)

	renderer := &descriptionRenderer{
		source:      source,
		theme:       theme,
		width:       width,
		lipRenderer: lipRenderer,
	}
	ast.Walk(document, renderer.walk)
	return strings.TrimRight(renderer.output.String(), "\n")
}

// descriptionRenderer walks a goldmark AST and accumulates styled
// terminal text. Inline content collects in a buffer and is
// word-wrapped as a unit when the containing block closes, which is
// why this is a direct ast.Walk rather than a goldmark renderer.
type descriptionRenderer struct {
	source []byte
	theme  Theme
	width  int

	output strings.Builder
	inline strings.Builder

	// Indentation for nested blockquotes and list items. indent is
	// the concatenated prefix for continuation lines; bullet, when
	// set, replaces it for the first line of the current list item.
	indent      string
	indentWidth int
	bullet      string

	// Inline style nesting. Counters rather than booleans so nested
	// emphasis unwinds correctly.
	boldCount   int
	italicCount int
	strikeCount int

	// Ordered-list counters, one per nesting level.
	listCounters []int

	lipRenderer *lipgloss.Renderer

	trailingNewlines int
}

func (renderer *descriptionRenderer) newStyle() lipgloss.Style {
	return renderer.lipRenderer.NewStyle()
}

// contentWidth is the wrap width after the current indentation.
func (renderer *descriptionRenderer) contentWidth() int {
	width := renderer.width - renderer.indentWidth
	if width < 10 {
		width = 10
	}
	return width
}

func (renderer *descriptionRenderer) write(s string) {
	if s == "" {
		return
	}
	renderer.output.WriteString(s)
	trailing := 0
	allNewlines := true
	for index := len(s) - 1; index >= 0; index-- {
		if s[index] != '\n' {
			allNewlines = false
			break
		}
		trailing++
	}
	if allNewlines {
		renderer.trailingNewlines += trailing
	} else {
		renderer.trailingNewlines = trailing
	}
}

func (renderer *descriptionRenderer) ensureNewline() {
	if renderer.trailingNewlines < 1 {
		renderer.write("\n")
	}
}

func (renderer *descriptionRenderer) ensureBlankLine() {
	for renderer.trailingNewlines < 2 {
		renderer.write("\n")
	}
}

// indentLines prepends the indent to every line. The first line takes
// the pending bullet instead when one is armed.
func (renderer *descriptionRenderer) indentLines(content string) string {
	lines := strings.Split(content, "\n")
	var result strings.Builder
	for index, line := range lines {
		if index == 0 && renderer.bullet != "" {
			result.WriteString(renderer.bullet)
			renderer.bullet = ""
		} else {
			result.WriteString(renderer.indent)
		}
		result.WriteString(line)
		if index < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}

// flushInline wraps the accumulated inline content and resets the
// buffer.
func (renderer *descriptionRenderer) flushInline() string {
	content := renderer.inline.String()
	renderer.inline.Reset()
	if content == "" {
		return ""
	}
	return renderer.indentLines(ansi.Wrap(content, renderer.contentWidth(), " ,.;-+|"))
}

func (renderer *descriptionRenderer) styledText(content string) string {
	style := renderer.newStyle().Foreground(renderer.theme.NormalText)
	if renderer.boldCount > 0 {
		style = style.Bold(true)
	}
	if renderer.italicCount > 0 {
		style = style.Italic(true)
	}
	if renderer.strikeCount > 0 {
		style = style.Strikethrough(true)
	}
	return style.Render(content)
}

func (renderer *descriptionRenderer) walk(node ast.Node, entering bool) (ast.WalkStatus, error) {
	switch node.Kind() {

	case ast.KindParagraph, ast.KindTextBlock:
		if entering {
			renderer.inline.Reset()
		} else if flushed := renderer.flushInline(); flushed != "" {
			renderer.write(flushed)
			renderer.ensureNewline()
			if len(renderer.listCounters) == 0 {
				renderer.ensureBlankLine()
			}
		}

	case ast.KindHeading:
		if entering {
			renderer.inline.Reset()
		} else {
			renderer.leaveHeading(node.(*ast.Heading))
		}

	case ast.KindFencedCodeBlock:
		if entering {
			block := node.(*ast.FencedCodeBlock)
			renderer.renderCode(blockText(block, renderer.source),
				string(block.Language(renderer.source)))
			return ast.WalkSkipChildren, nil
		}

	case ast.KindCodeBlock:
		if entering {
			renderer.renderCode(blockText(node, renderer.source), "")
			return ast.WalkSkipChildren, nil
		}

	case ast.KindBlockquote:
		if entering {
			renderer.indent += "│ "
			renderer.indentWidth += 2
		} else {
			renderer.indent = renderer.indent[:len(renderer.indent)-len("│ ")]
			renderer.indentWidth -= 2
			renderer.ensureBlankLine()
		}

	case ast.KindList:
		if entering {
			start := 0
			if list := node.(*ast.List); list.IsOrdered() {
				start = list.Start
			}
			renderer.listCounters = append(renderer.listCounters, start)
		} else {
			renderer.listCounters = renderer.listCounters[:len(renderer.listCounters)-1]
			if len(renderer.listCounters) == 0 {
				renderer.ensureBlankLine()
			}
		}

	case ast.KindListItem:
		if entering {
			renderer.enterListItem()
		} else {
			renderer.indent = renderer.indent[:len(renderer.indent)-renderer.itemIndent()]
			renderer.indentWidth -= renderer.itemIndent()
			renderer.ensureNewline()
		}

	case ast.KindThematicBreak:
		if entering {
			rule := renderer.newStyle().
				Foreground(renderer.theme.BorderColor).
				Render(strings.Repeat("─", renderer.contentWidth()))
			renderer.ensureBlankLine()
			renderer.write(renderer.indentLines(rule))
			renderer.ensureNewline()
			renderer.ensureBlankLine()
		}

	case ast.KindText:
		if entering {
			textNode := node.(*ast.Text)
			renderer.inline.WriteString(renderer.styledText(
				string(textNode.Segment.Value(renderer.source))))
			if textNode.SoftLineBreak() {
				// Reflow: soft breaks are spaces, not newlines.
				renderer.inline.WriteString(" ")
			}
			if textNode.HardLineBreak() {
				renderer.inline.WriteString("\n")
			}
		}

	case ast.KindString:
		if entering {
			renderer.inline.WriteString(renderer.styledText(
				string(node.(*ast.String).Value)))
		}

	case ast.KindEmphasis:
		emphasis := node.(*ast.Emphasis)
		delta := 1
		if !entering {
			delta = -1
		}
		if emphasis.Level >= 2 {
			renderer.boldCount += delta
		} else {
			renderer.italicCount += delta
		}

	case extast.KindStrikethrough:
		if entering {
			renderer.strikeCount++
		} else {
			renderer.strikeCount--
		}

	case ast.KindCodeSpan:
		if entering {
			renderer.inline.WriteString(renderer.newStyle().
				Foreground(renderer.theme.FaintText).
				Render(spanText(node, renderer.source)))
			return ast.WalkSkipChildren, nil
		}

	case ast.KindLink:
		if entering {
			link := node.(*ast.Link)
			renderer.inline.WriteString(renderer.newStyle().
				Foreground(renderer.theme.LinkForeground).
				Render(spanText(link, renderer.source)))
			if url := string(link.Destination); url != "" {
				renderer.inline.WriteString(" " + renderer.newStyle().
					Foreground(renderer.theme.FaintText).
					Render("("+url+")"))
			}
			return ast.WalkSkipChildren, nil
		}

	case ast.KindAutoLink:
		if entering {
			renderer.inline.WriteString(renderer.newStyle().
				Foreground(renderer.theme.LinkForeground).
				Render(string(node.(*ast.AutoLink).URL(renderer.source))))
		}
	}

	return ast.WalkContinue, nil
}

func (renderer *descriptionRenderer) leaveHeading(heading *ast.Heading) {
	// Headings carry their own style; strip whatever inline styling
	// accumulated.
	content := ansi.Strip(renderer.inline.String())
	renderer.inline.Reset()
	if content == "" {
		return
	}
	style := renderer.newStyle().Bold(true).Foreground(renderer.theme.NormalText)
	if heading.Level <= 2 {
		style = style.Foreground(renderer.theme.HeaderForeground)
	}
	wrapped := ansi.Wrap(style.Render(content), renderer.contentWidth(), " ,.;-+|")
	renderer.ensureBlankLine()
	renderer.write(renderer.indentLines(wrapped))
	renderer.ensureNewline()
	renderer.ensureBlankLine()
}

// renderCode emits a code block, syntax-highlighted when the language
// is known to Chroma and plain FaintText otherwise.
func (renderer *descriptionRenderer) renderCode(code, language string) {
	var rendered string
	if language != "" {
		var buffer strings.Builder
		if err := quick.Highlight(&buffer, code, language, "terminal256", "monokai"); err == nil {
			rendered = buffer.String()
		}
	}
	if rendered == "" {
		rendered = renderer.newStyle().Foreground(renderer.theme.FaintText).Render(code)
	}

	renderer.ensureBlankLine()
	for _, line := range strings.Split(strings.TrimRight(rendered, "\n"), "\n") {
		renderer.write(renderer.indentLines(line))
		renderer.ensureNewline()
	}
	renderer.ensureBlankLine()
}

// itemIndent is the continuation indent width of the innermost list
// level: ordered items use "N. ", unordered "- ".
func (renderer *descriptionRenderer) itemIndent() int {
	if len(renderer.listCounters) == 0 {
		return 0
	}
	if renderer.listCounters[len(renderer.listCounters)-1] > 0 {
		return len(fmt.Sprintf("%d. ", renderer.listCounters[len(renderer.listCounters)-1]-1))
	}
	return 2
}

func (renderer *descriptionRenderer) enterListItem() {
	if len(renderer.listCounters) == 0 {
		return
	}
	level := len(renderer.listCounters) - 1
	var marker string
	if renderer.listCounters[level] > 0 {
		marker = fmt.Sprintf("%d. ", renderer.listCounters[level])
		renderer.listCounters[level]++
	} else {
		marker = "- "
	}
	renderer.bullet = renderer.indent + marker
	renderer.indent += strings.Repeat(" ", len(marker))
	renderer.indentWidth += len(marker)
}

// blockText collects the raw source lines of a code block node.
func blockText(node ast.Node, source []byte) string {
	var buffer strings.Builder
	lines := node.Lines()
	for index := 0; index < lines.Len(); index++ {
		segment := lines.At(index)
		buffer.Write(segment.Value(source))
	}
	return buffer.String()
}

// spanText collects the plain text of an inline node's children.
func spanText(node ast.Node, source []byte) string {
	var buffer strings.Builder
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		switch typed := child.(type) {
		case *ast.Text:
			buffer.Write(typed.Segment.Value(source))
		case *ast.String:
			buffer.Write(typed.Value)
		default:
			buffer.WriteString(spanText(child, source))
		}
	}
	return buffer.String()
}
