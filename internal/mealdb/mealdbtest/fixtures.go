// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package mealdbtest

// Canned payloads shaped like the live API.
const (
	SearchChicken = `{"meals":[
{"idMeal":"52795","strMeal":"Chicken Handi","strCategory":"Chicken","strArea":"Indian","strMealThumb":"https://img.test/handi.jpg"},
{"idMeal":"52818","strMeal":"Chicken Fajita Mac and Cheese","strCategory":"Pasta","strArea":"American","strMealThumb":"https://img.test/fajita.jpg"},
{"idMeal":"53000","strMeal":"chicken soup","strCategory":null,"strArea":null,"strMealThumb":"https://img.test/soup.jpg"}
]}`

	LookupChickenHandi = `{"meals":[{
"idMeal":"52795","strMeal":"Chicken Handi","strDrinkAlternate":null,"strCategory":"Chicken","strArea":"Indian",
"strInstructions":"Take a large pot.\r\n\r\nAdd the chicken.\n  \nServe hot.",
"strMealThumb":"https://img.test/handi.jpg","strTags":"Curry, Spicy,,",
"strYoutube":"https://www.youtube.com/watch?v=IO0issT0Rmc","strSource":"https://recipes.test/handi",
"strIngredient1":"Chicken","strIngredient2":" Onion ","strIngredient3":"","strIngredient4":"Ginger","strIngredient5":"   ",
"strIngredient6":null,"strIngredient7":"","strIngredient8":"","strIngredient9":"","strIngredient10":"",
"strIngredient11":"","strIngredient12":"","strIngredient13":"","strIngredient14":"","strIngredient15":"",
"strIngredient16":null,"strIngredient17":null,"strIngredient18":null,"strIngredient19":null,"strIngredient20":"Coriander",
"strMeasure1":"1.2 kg","strMeasure2":" 5 thinly sliced ","strMeasure3":"","strMeasure4":null,"strMeasure5":"1 tsp",
"strMeasure6":null,"strMeasure7":"","strMeasure8":"","strMeasure9":"","strMeasure10":"",
"strMeasure11":"","strMeasure12":"","strMeasure13":"","strMeasure14":"","strMeasure15":"",
"strMeasure16":null,"strMeasure17":null,"strMeasure18":null,"strMeasure19":null,"strMeasure20":"garnish"
}]}`

	Categories = `{"categories":[
{"idCategory":"1","strCategory":"Beef","strCategoryThumb":"https://img.test/beef.png","strCategoryDescription":"Beef is the culinary name for meat from cattle."},
{"idCategory":"2","strCategory":"Chicken","strCategoryThumb":"https://img.test/chicken.png","strCategoryDescription":"Chicken is a type of domesticated fowl."},
{"idCategory":"3","strCategory":"Dessert","strCategoryThumb":"https://img.test/dessert.png","strCategoryDescription":"Dessert is a course that concludes a meal."},
{"idCategory":"4","strCategory":"Lamb","strCategoryThumb":"https://img.test/lamb.png","strCategoryDescription":"Lamb is the meat of young domestic sheep."}
]}`

	Areas = `{"meals":[{"strArea":"American"},{"strArea":"Indian"},{"strArea":"Italian"}]}`

	FilterBeef = `{"meals":[
{"strMeal":"Beef Wellington","strMealThumb":"https://img.test/wellington.jpg","idMeal":"52803"},
{"strMeal":"Beef Stroganoff","strMealThumb":"https://img.test/stroganoff.jpg","idMeal":"52834"}
]}`

	FilterChicken = `{"meals":[
{"strMeal":"Chicken Handi","strMealThumb":"https://img.test/handi.jpg","idMeal":"52795"},
{"strMeal":"Chicken Fajita Mac and Cheese","strMealThumb":"https://img.test/fajita.jpg","idMeal":"52818"},
{"strMeal":"Brown Stew Chicken","strMealThumb":"https://img.test/brown.jpg","idMeal":"52940"}
]}`

	FilterDessert = `{"meals":[
{"strMeal":"Apple Frangipan Tart","strMealThumb":"https://img.test/tart.jpg","idMeal":"52768"}
]}`

	FilterIndian = `{"meals":[
{"strMeal":"Chicken Handi","strMealThumb":"https://img.test/handi.jpg","idMeal":"52795"},
{"strMeal":"Lamb Rogan josh","strMealThumb":"https://img.test/rogan.jpg","idMeal":"52807"}
]}`
)

// NewRecipeServer returns a Server preloaded with the fixtures above.
func NewRecipeServer() *Server {
	s := NewServer()
	s.Handle("/search.php?s=chicken", SearchChicken)
	s.Handle("/lookup.php?i=52795", LookupChickenHandi)
	s.Handle("/categories.php", Categories)
	s.Handle("/list.php?a=list", Areas)
	s.Handle("/filter.php?c=Beef", FilterBeef)
	s.Handle("/filter.php?c=Chicken", FilterChicken)
	s.Handle("/filter.php?c=Dessert", FilterDessert)
	s.Handle("/filter.php?a=Indian", FilterIndian)
	return s
}
