// Package movielens reads the MovieLens CSV layout:
//
//	movies.csv   movieId,title,genres
//	ratings.csv  userId,movieId,rating[,timestamp]
//
// Columns are located by header name, so extra columns and any column
// order are accepted.
package movielens
