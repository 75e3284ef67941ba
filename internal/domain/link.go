package domain

// ProductLink is one row of the product-link catalog: a product title mapped
// to the download URL delivered after purchase. The catalog lives in an
// external relational store; this process only reads it.
type ProductLink struct {
	Title        string
	DownloadLink string
}
