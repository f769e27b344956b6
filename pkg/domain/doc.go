/*
Package domain contains the canonical model that every loosely typed slide
payload is normalized into before rendering.

It is kept free of I/O and of the rendering library so that the normalizer and
the builder can be tested independently.

# Key Entities

  - PresentationRequest: one deck (metadata, layout and ordered slides).
  - SlideSpec: one output slide (background, notes and ordered elements).
  - Element: a closed union of element kinds (Text, RichText, Table, Image,
    Shape, Rect, Chart, Media) with an explicit Unrecognized arm.
  - Artifact: the encoded file handed back to the caller.
*/
package domain
