// Package extract implements text extraction for the media kinds the
// upload boundary accepts: PDF and plain text. Extractors register by
// media kind; everything else is rejected before persistence.
package extract
