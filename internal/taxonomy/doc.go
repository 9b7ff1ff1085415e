// Package taxonomy holds the category registry consumed by the obvious
// pattern matcher and the conflict detector.
//
// Each category carries the extension and filename-keyword rules used for
// deterministic matching, the confidence a deterministic match earns, and a
// media kind (document, image, audio, video, archive, code, generic) used
// by type-mismatch conflict detection. A built-in default registry ships
// with the binary; users may overlay or replace categories from a TOML file
// referenced by paths.taxonomy_path in the configuration.
package taxonomy
