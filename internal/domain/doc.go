// Package domain enriches city news articles with a geographic anchor and an
// event category.
//
// # Data Source
//
// Articles originate from RSS feeds covering Paris (French and English outlets).
// The upstream fetcher publishes each feed entry as flat JSON to the Kafka source
// topic; an optional translator adds title_translated and summary_translated.
// Summaries frequently carry HTML fragments, which are stripped before matching.
//
// # Location Resolution
//
// [Resolver.Resolve] maps free text to exactly one point, first success wins:
//
//	1. District: a French ordinal ("18e", "1er", "5ème", "10eme") then an English
//	   ordinal ("18th", "1st"), optionally followed by "arrondissement". Only the
//	   first regex match is considered; its number must be a key of the district
//	   index or the branch yields nothing.
//	2. Landmark: gazetteer landmark keys, longest first, tested as substrings of
//	   the lower-cased text. "tour eiffel" wins over "eiffel".
//	3. Fallback: Paris city center (48.8566, 2.3522).
//
// Blank text goes straight to the fallback.
//
// # Event Classification
//
// [Classifier.Classify] scans the ordered taxonomy (crime, strike, transport)
// and returns the first rule with a keyword occurring in the lower-cased text,
// or "other". Order is priority: "Grève RATP" is a strike, not transport.
//
// # ID Generation
//
// Articles without an upstream id get a UUIDv5 of their URL (URL namespace).
// Reprocessing the same feed entry yields the same id. See [ParseRawArticle].
package domain
