// Package dataset generates and loads the points and initial centroids that a
// fuzzy c-means run starts from.
//
// Nothing here is needed by the clustering core; it covers the data-setup
// side of a driver: isotropic Gaussian blobs, random centroid placement inside
// the data's bounding box, k-means seeding and CSV import/export.
package dataset
