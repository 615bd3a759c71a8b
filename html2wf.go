// Package html2wf resolves the styles of HTML elements against CSS and
// assigns every class a collision-free generated name.
//
// A conversion parses the markup, parses the stylesheet (external sources
// first, then any <style> blocks), registers every markup class in
// document order, rewrites every selector to the generated names and
// finally runs a simplified cascade for each element.
//
// # Single document
//
//	conv := html2wf.NewConverter(html2wf.Config{Prefix: "wf-"}, nil)
//	doc, err := conv.ConvertString(markup, css)
//	for _, el := range doc.Elements {
//		fmt.Println(el.ID, el.Classes, el.Properties)
//	}
//
// # Batch
//
//	res, err := conv.Convert(ctx, html2wf.BatchOptions{
//		Inputs:      []string{"site/**/*.html"},
//		Stylesheets: []string{"site/css/*.css"},
//	})
//
// Each document gets its own naming registry, so documents converted
// concurrently never share generated names.
//
// # Cascade model
//
// Only selectors that are exactly one class (".name") or one tag name
// are applied. Specificity uses additive weights (id 100, class 10,
// tag 1). Audit reports the rules this model leaves out.
package html2wf
