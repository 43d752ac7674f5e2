// Package mediatype classifies files by their extension.
//
// Classification is intentionally cheap: it never opens the file. The MIME
// type is resolved from the extension via the platform MIME registry, with a
// built-in fallback table for the image formats the uploader produces, so
// results stay stable on hosts with a sparse registry.
//
// # Usage
//
//	mt := mediatype.Classify("2024/07/cat.webp") // "image/webp"
//	mediatype.IsImage(mt)                        // true
package mediatype
