// Package schema validates scene graphs before they are played.
//
// Validation never stops at the first problem: every failure is collected
// into an AggregateError of ValidationErrors whose Key is a dotted path into
// the document, e.g. "scenes.intro.layers[2].animations[0]".
//
// Layer kinds may declare a field schema for their free-form data:
//
//	schema.LayerData["text"] = schema.Fields{
//	    "text": schema.String(),
//	    "size": schema.Float(),
//	}
package schema
