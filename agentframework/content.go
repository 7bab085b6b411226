// Copyright (c) Microsoft. All rights reserved.

package agentframework

// ContentType identifies the kind of content within a message.
type ContentType string

const (
	ContentTypeText      ContentType = "text"
	ContentTypeImageFile ContentType = "image_file"
)

// Content is a sealed interface representing a piece of content within a [Message].
// Use a type switch to inspect the underlying type.
type Content interface {
	// Type returns the discriminator for this content item.
	Type() ContentType

	// sealed prevents external implementations.
	sealed()
}

// Contents is an ordered list of [Content] items.
type Contents []Content

// base is embedded by every concrete Content type to satisfy the sealed marker.
type base struct{}

func (base) sealed() {}

// TextContent holds plain text.
type TextContent struct {
	base
	Text string
}

func (c *TextContent) Type() ContentType { return ContentTypeText }

// ImageFileContent references an image hosted by the service, such as a chart
// produced by the code interpreter.
type ImageFileContent struct {
	base
	FileID string
}

func (c *ImageFileContent) Type() ContentType { return ContentTypeImageFile }
